package gorm

import (
	"time"

	"gorm.io/datatypes"
)

type Journal struct {
	Record
	Code      string    `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Domain    string    `gorm:"column:domain" json:"domain"`
	IsRemote  bool      `gorm:"column:is_remote;default:false" json:"is_remote"`
	Sequence  int       `gorm:"column:sequence" json:"sequence"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Journal) TableName() string {
	return "journal_journal"
}

// Setting is one row of the auxiliary settings store. Scope and ObjectID
// identify the owning entity ("Journal", 3).
type Setting struct {
	Record
	Scope     string         `gorm:"column:scope;uniqueIndex:idx_setting_key" json:"scope"`
	ObjectID  uint           `gorm:"column:object_id;uniqueIndex:idx_setting_key" json:"object_id"`
	Group     string         `gorm:"column:setting_group;uniqueIndex:idx_setting_key" json:"group"`
	Name      string         `gorm:"column:name;uniqueIndex:idx_setting_key" json:"name"`
	Value     datatypes.JSON `gorm:"column:value" json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "utils_setting_value"
}

type IssueType struct {
	Record
	JournalID  uint   `gorm:"column:journal_id;uniqueIndex:idx_issue_type_code" json:"journal_id"`
	Code       string `gorm:"column:code;uniqueIndex:idx_issue_type_code" json:"code"`
	PrettyName string `gorm:"column:pretty_name" json:"pretty_name"`
}

func (IssueType) TableName() string {
	return "journal_issuetype"
}

type Issue struct {
	Record
	JournalID        uint       `gorm:"column:journal_id;index" json:"journal_id"`
	IssueTitle       string     `gorm:"column:issue_title" json:"issue_title"`
	Volume           int        `gorm:"column:volume" json:"volume"`
	Issue            string     `gorm:"column:issue" json:"issue"`
	Date             *time.Time `gorm:"column:date" json:"date"`
	IssueDescription string     `gorm:"column:issue_description" json:"issue_description"`
	Order            int        `gorm:"column:order" json:"order"`
	IssueTypeID      uint       `gorm:"column:issue_type_id" json:"issue_type_id"`
}

func (Issue) TableName() string {
	return "journal_issue"
}

type Section struct {
	Record
	JournalID uint   `gorm:"column:journal_id;index" json:"journal_id"`
	Name      string `gorm:"column:name" json:"name"`
	Sequence  int    `gorm:"column:sequence" json:"sequence"`
}

func (Section) TableName() string {
	return "submission_section"
}

// Field is a journal-level custom metadata field answered per article.
type Field struct {
	Record
	JournalID uint   `gorm:"column:journal_id;uniqueIndex:idx_field_name" json:"journal_id"`
	Name      string `gorm:"column:name;uniqueIndex:idx_field_name" json:"name"`
	Kind      string `gorm:"column:kind" json:"kind"`
	Order     int    `gorm:"column:order" json:"order"`
	HelpText  string `gorm:"column:help_text" json:"help_text"`
	Required  bool   `gorm:"column:required" json:"required"`
}

func (Field) TableName() string {
	return "submission_field"
}

type FieldAnswer struct {
	Record
	FieldID   uint   `gorm:"column:field_id;uniqueIndex:idx_field_answer" json:"field_id"`
	ArticleID uint   `gorm:"column:article_id;uniqueIndex:idx_field_answer" json:"article_id"`
	Answer    string `gorm:"column:answer" json:"answer"`
}

func (FieldAnswer) TableName() string {
	return "submission_fieldanswer"
}
