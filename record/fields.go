package record

import (
	"strconv"

	"github.com/ByLCY/dossier/registry"
)

// UntilNow 是没有结束日期的工作经历显示的结束日期。
const UntilNow = "至今"

// Section 把档案的一个分组转换为 "字段键 -> 显示值" 的条目列表，
// 键与描述集中的字段键一致。基础信息只有一个条目，列表分组按原顺序返回。
func (e *Employee) Section(id registry.SectionID) []map[string]string {
	if e == nil {
		return nil
	}
	switch id {
	case registry.SectionBasic:
		return []map[string]string{e.basicFields()}
	case registry.SectionWork:
		out := make([]map[string]string, 0, len(e.WorkExperiences))
		for _, w := range e.WorkExperiences {
			end := w.EndDate.String()
			if end == "" {
				end = UntilNow
			}
			out = append(out, map[string]string{
				"workStartDate": w.StartDate.String(),
				"workEndDate":   end,
				"company":       w.Company,
				"position":      w.Position,
				"duties":        w.Duties,
			})
		}
		return out
	case registry.SectionEducation:
		out := make([]map[string]string, 0, len(e.Educations))
		for _, ed := range e.Educations {
			out = append(out, map[string]string{
				"eduStartDate": ed.StartDate.String(),
				"eduEndDate":   ed.EndDate.String(),
				"school":       ed.School,
				"major":        ed.Major,
				"degree":       ed.Degree,
			})
		}
		return out
	case registry.SectionFamily:
		out := make([]map[string]string, 0, len(e.FamilyMembers))
		for _, m := range e.FamilyMembers {
			fields := map[string]string{
				"relation":   m.Relation,
				"familyName": m.Name,
				"workUnit":   m.WorkUnit,
			}
			if m.Age != nil {
				fields["age"] = strconv.Itoa(*m.Age)
			}
			out = append(out, fields)
		}
		return out
	default:
		return nil
	}
}

func (e *Employee) basicFields() map[string]string {
	return map[string]string{
		"name":             e.Name,
		"gender":           e.Gender,
		"birthDate":        e.BirthDate.String(),
		"nation":           e.Nation,
		"idCard":           e.IDCard,
		"politicalStatus":  e.PoliticalStatus,
		"maritalStatus":    e.MaritalStatus,
		"phone":            e.Phone,
		"email":            e.Email,
		"nativePlace":      e.NativePlace,
		"currentAddress":   e.CurrentAddress,
		"emergencyContact": e.EmergencyContact,
		"emergencyPhone":   e.EmergencyPhone,
	}
}

// PhotoData 返回 base64 编码的照片。
func (e *Employee) PhotoData() string {
	if e == nil {
		return ""
	}
	return e.PhotoBase64
}
