package record

import "time"

// samplePhoto 是 1x1 的 PNG。
const samplePhoto = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func intPtr(v int) *int { return &v }

// NewSampleSource 返回内置的演示档案：
// 001 信息完整且家庭成员较多，002 字段稀疏，003 含超长文本。
func NewSampleSource() *MemorySource {
	s, err := NewMemorySource(SampleEmployees()...)
	if err != nil {
		panic(err)
	}
	return s
}

// SampleEmployees 每次调用都返回新的演示档案。
func SampleEmployees() []*Employee {
	father := FamilyMember{Relation: "父亲", Name: "张大明", Age: intPtr(65), WorkUnit: "已退休"}
	mother := FamilyMember{Relation: "母亲", Name: "王秀英", Age: intPtr(63), WorkUnit: "已退休"}
	spouse := FamilyMember{Relation: "配偶", Name: "李娜", Age: intPtr(32), WorkUnit: "北京市第一医院"}
	var family []FamilyMember
	for i := 0; i < 4; i++ {
		family = append(family, father, mother, spouse)
	}

	complete := &Employee{
		ID:               "001",
		Name:             "张三",
		Gender:           "男",
		BirthDate:        NewDate(1990, time.May, 15),
		IDCard:           "110101199005151234",
		Nation:           "汉族",
		PoliticalStatus:  "中共党员",
		MaritalStatus:    "已婚",
		Phone:            "13800138000",
		Email:            "zhangsan@example.com",
		NativePlace:      "北京市东城区",
		CurrentAddress:   "北京市朝阳区建国路1号院2号楼3单元401室",
		EmergencyContact: "李四",
		EmergencyPhone:   "13900139000",
		PhotoBase64:      samplePhoto,
		WorkExperiences: []WorkExperience{
			{
				StartDate: NewDate(2015, time.July, 1),
				EndDate:   NewDate(2018, time.December, 31),
				Company:   "ABC科技有限公司",
				Position:  "Java开发工程师",
				Duties:    "负责公司核心业务系统的开发与维护,参与需求分析、系统设计、编码实现及测试等工作",
			},
			{
				StartDate: NewDate(2019, time.January, 1),
				Company:   "XYZ集团",
				Position:  "高级Java工程师",
				Duties:    "负责企业级应用架构设计,带领团队完成多个大型项目的开发",
			},
		},
		Educations: []Education{
			{StartDate: NewDate(2008, time.September, 1), EndDate: NewDate(2012, time.June, 30), School: "清华大学", Major: "计算机科学与技术", Degree: "本科"},
			{StartDate: NewDate(2012, time.September, 1), EndDate: NewDate(2015, time.June, 30), School: "清华大学", Major: "软件工程", Degree: "硕士"},
		},
		FamilyMembers: family,
	}

	sparse := &Employee{
		ID:          "002",
		Name:        "李四",
		Gender:      "女",
		BirthDate:   NewDate(1995, time.August, 20),
		Phone:       "13700137000",
		Email:       "lisi@example.com",
		PhotoBase64: samplePhoto,
		Educations: []Education{
			{StartDate: NewDate(2013, time.September, 1), EndDate: NewDate(2017, time.June, 30), School: "北京大学", Major: "信息管理与信息系统", Degree: "本科"},
		},
	}

	long := &Employee{
		ID:              "003",
		Name:            "王五",
		Gender:          "男",
		BirthDate:       NewDate(1988, time.March, 10),
		IDCard:          "310101198803101234",
		Nation:          "汉族",
		PoliticalStatus: "群众",
		MaritalStatus:   "未婚",
		Phone:           "13600136000",
		Email:           "wangwu@example.com",
		NativePlace:     "上海市黄浦区",
		CurrentAddress:  "上海市浦东新区世纪大道1000号高银金融大厦A座2501室,靠近地铁2号线和4号线世纪大道站,交通便利",
		PhotoBase64:     samplePhoto,
		WorkExperiences: []WorkExperience{
			{
				StartDate: NewDate(2010, time.July, 1),
				EndDate:   NewDate(2015, time.December, 31),
				Company:   "上海某大型互联网公司",
				Position:  "后端开发工程师",
				Duties: "负责公司电商平台后端服务的开发,包括但不限于:用户系统、订单系统、支付系统、库存系统等核心模块的设计与实现;" +
					"参与系统架构优化,提升系统性能和稳定性;编写技术文档,指导初级工程师;参与Code Review,保证代码质量;" +
					"与产品经理、前端工程师密切合作,确保需求准确实现",
			},
		},
	}

	return []*Employee{complete, sparse, long}
}
