package mappers

import (
	"strings"
	"time"

	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/transport"
)

const revisionWindow = 30 * 24 * time.Hour

// EditorAssignment maps an editor assigned to the parent article. The first
// import for an editor and article wins; later ones return it unchanged.
func EditorAssignment() *transport.Definition[gormModels.EditorAssignment] {
	return &transport.Definition[gormModels.EditorAssignment]{
		Name: "EditorAssignment",
		Fields: []transport.Field{
			{Name: "editor_type", Type: transport.Choice, Choices: []string{"editor", "section-editor"}},
			{Name: "date_notified", Attr: "assigned", Type: transport.DateTime},
			{Name: "notified", Type: transport.Boolean},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "editor", Attr: "editor_id", Target: "Account", Required: true},
		},
		Defaults: []transport.Default{
			{Field: "editor_type", Value: "editor"},
			{Field: "notified", Value: false},
		},
		Parents:    articleParent,
		ParentKeys: articleOnly,

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			if kind, ok := data["editor_type"].(string); ok {
				data["editor_type"] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(kind)), "_", "-")
			}
			return nil
		},

		Existing: func(c *transport.Context, data transport.Payload) (*gormModels.EditorAssignment, error) {
			var existing gormModels.EditorAssignment
			err := c.Tx().Where("article_id = ? AND editor_id = ?", uintValue(data, "article_id"), uintValue(data, "editor_id")).
				First(&existing).Error
			if err != nil {
				return nil, notFound(err)
			}
			return &existing, nil
		},
	}
}

var revisionTypes = map[string]string{
	"minor":           constants.DecisionMinorRevisions,
	"minor_revisions": constants.DecisionMinorRevisions,
	"minor revisions": constants.DecisionMinorRevisions,
	"major":           constants.DecisionMajorRevisions,
	"major_revisions": constants.DecisionMajorRevisions,
	"major revisions": constants.DecisionMajorRevisions,
	"resubmit":        constants.DecisionMajorRevisions,
}

// RevisionRequest maps a request for the author to revise the parent
// article. Without a due date the author gets thirty days.
func RevisionRequest() *transport.Definition[gormModels.RevisionRequest] {
	return &transport.Definition[gormModels.RevisionRequest]{
		Name: "RevisionRequest",
		Fields: []transport.Field{
			{Name: "type", Type: transport.Choice, Choices: []string{constants.DecisionMinorRevisions, constants.DecisionMajorRevisions}},
			{Name: "editor_note", Type: transport.Text},
			{Name: "author_note", Type: transport.Text},
			{Name: "date_requested", Type: transport.DateTime},
			{Name: "date_due", Type: transport.DateTime},
			{Name: "date_completed", Type: transport.DateTime},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "editor", Attr: "editor_id", Target: "Account"},
		},
		Defaults: []transport.Default{
			{Field: "type", Value: constants.DecisionMinorRevisions},
			{Field: "date_requested", Func: func(c *transport.Context, _ transport.Payload) (any, error) { return c.Now, nil }},
			{Field: "date_due", Func: func(c *transport.Context, _ transport.Payload) (any, error) {
				return c.Now.Add(revisionWindow), nil
			}},
		},
		Parents:    articleParent,
		ParentKeys: articleOnly,

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			if mapped, ok := revisionTypes[strings.ToLower(strings.TrimSpace(data.String("type")))]; ok {
				data["type"] = mapped
			}
			return nil
		},

		PreProcess: func(_ *transport.Context, data transport.Payload) error {
			data["actioned"] = data.Time("date_completed") != nil
			return nil
		},
	}
}
