package mappers

import (
	"fmt"

	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/transport"
)

// Issue maps an issue of the parent journal. The issue type is looked up
// (or created) by code on that journal.
func Issue() *transport.Definition[gormModels.Issue] {
	return &transport.Definition[gormModels.Issue]{
		Name: "Issue",
		Fields: []transport.Field{
			{Name: "title", Attr: "issue_title", Type: transport.String},
			{Name: "volume", Type: transport.Integer},
			{Name: "number", Attr: "issue", Type: transport.String},
			{Name: "date_published", Attr: "date", Type: transport.DateTime},
			{Name: "description", Attr: "issue_description", Type: transport.Text},
			{Name: "sequence", Attr: "order", Type: transport.Integer},
			{Name: "issue_type", Attr: "issue_type_code", Type: transport.String},
		},
		Defaults: []transport.Default{
			{Field: "volume", Value: 1},
			{Field: "number", Value: "1"},
			{Field: "issue_type", Value: defaultIssueTypeCode},
			{Field: "date_published", Func: func(c *transport.Context, _ transport.Payload) (any, error) {
				return c.Now, nil
			}},
			{Field: "sequence", Func: func(c *transport.Context, _ transport.Payload) (any, error) {
				var count int64
				err := c.Tx().Model(&gormModels.Issue{}).Where("journal_id = ?", c.Parent("journal_id")).Count(&count).Error
				return count, err
			}},
		},
		Parents: journalParent,

		PreProcess: func(c *transport.Context, data transport.Payload) error {
			code, _ := data.Pop("issue_type_code")
			issueType := gormModels.IssueType{JournalID: uintValue(data, "journal_id"), Code: fmt.Sprint(code)}
			attrs := gormModels.IssueType{PrettyName: titleCase(issueType.Code)}
			if err := c.Tx().Where(issueType).Attrs(attrs).FirstOrCreate(&issueType).Error; err != nil {
				return fmt.Errorf("failed to resolve issue type %q: %w", issueType.Code, err)
			}
			data["issue_type_id"] = issueType.ID
			return nil
		},
		Present: func(c *transport.Context, issue *gormModels.Issue, out map[string]any) error {
			var issueType gormModels.IssueType
			if err := notFound(c.Tx().First(&issueType, issue.IssueTypeID).Error); err != nil {
				return err
			}
			out["issue_type"] = issueType.Code
			return nil
		},
	}
}

// Section maps a journal section.
func Section() *transport.Definition[gormModels.Section] {
	return &transport.Definition[gormModels.Section]{
		Name: "Section",
		Fields: []transport.Field{
			{Name: "title", Attr: "name", Type: transport.String},
			{Name: "sequence", Type: transport.Integer},
		},
		Defaults: []transport.Default{{Field: "sequence", Value: 0}},
		Parents:  journalParent,
	}
}
