// Package record 定义员工档案数据模型及其数据源。
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout 是档案中日期的输入与显示格式。
const DateLayout = "2006-01-02"

// Date 是不带时区的日期，零值表示未填写。
type Date struct {
	time.Time
}

// NewDate 构造指定年月日的日期。
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate 解析 2006-01-02 格式的日期，空串得到零值。
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("record: 日期 %q 格式错误，应为 %s", s, DateLayout)
	}
	return Date{t}, nil
}

// String 返回显示用的日期；零值返回空串。
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("record: 日期应为字符串: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// Employee 是一份员工档案。
type Employee struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Gender           string `json:"gender,omitempty" yaml:"gender,omitempty"`
	BirthDate        Date   `json:"birthDate" yaml:"birthDate,omitempty"`
	IDCard           string `json:"idCard,omitempty" yaml:"idCard,omitempty"`
	Nation           string `json:"nation,omitempty" yaml:"nation,omitempty"`
	PoliticalStatus  string `json:"politicalStatus,omitempty" yaml:"politicalStatus,omitempty"`
	MaritalStatus    string `json:"maritalStatus,omitempty" yaml:"maritalStatus,omitempty"`
	Phone            string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email            string `json:"email,omitempty" yaml:"email,omitempty"`
	NativePlace      string `json:"nativePlace,omitempty" yaml:"nativePlace,omitempty"`
	CurrentAddress   string `json:"currentAddress,omitempty" yaml:"currentAddress,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty" yaml:"emergencyContact,omitempty"`
	EmergencyPhone   string `json:"emergencyPhone,omitempty" yaml:"emergencyPhone,omitempty"`
	PhotoBase64      string `json:"photoBase64,omitempty" yaml:"photoBase64,omitempty"`

	WorkExperiences []WorkExperience `json:"workExperiences,omitempty" yaml:"workExperiences,omitempty"`
	Educations      []Education      `json:"educations,omitempty" yaml:"educations,omitempty"`
	FamilyMembers   []FamilyMember   `json:"familyMembers,omitempty" yaml:"familyMembers,omitempty"`
}

// WorkExperience 是一段工作经历；EndDate 为零值表示至今。
type WorkExperience struct {
	StartDate Date   `json:"startDate" yaml:"startDate,omitempty"`
	EndDate   Date   `json:"endDate" yaml:"endDate,omitempty"`
	Company   string `json:"company,omitempty" yaml:"company,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty"`
	Duties    string `json:"duties,omitempty" yaml:"duties,omitempty"`
}

type Education struct {
	StartDate Date   `json:"startDate" yaml:"startDate,omitempty"`
	EndDate   Date   `json:"endDate" yaml:"endDate,omitempty"`
	School    string `json:"school,omitempty" yaml:"school,omitempty"`
	Major     string `json:"major,omitempty" yaml:"major,omitempty"`
	Degree    string `json:"degree,omitempty" yaml:"degree,omitempty"`
}

type FamilyMember struct {
	Relation string `json:"relation,omitempty" yaml:"relation,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Age      *int   `json:"age,omitempty" yaml:"age,omitempty"`
	WorkUnit string `json:"workUnit,omitempty" yaml:"workUnit,omitempty"`
}
