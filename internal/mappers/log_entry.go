package mappers

import (
	"strings"

	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/transport"

	"gorm.io/gorm"
)

var logLevels = map[string]string{
	"debug":   "Debug",
	"info":    "Info",
	"notice":  "Info",
	"warn":    "Warning",
	"warning": "Warning",
	"error":   "Error",
}

// LogEntry maps an event from the article's history.
func LogEntry() *transport.Definition[gormModels.LogEntry] {
	return &transport.Definition[gormModels.LogEntry]{
		Name: "LogEntry",
		Fields: []transport.Field{
			{Name: "date", Type: transport.DateTime},
			{Name: "description", Type: transport.Text},
			{Name: "subject", Type: transport.String, MaxLength: 255},
			{Name: "level", Type: transport.Choice, Choices: []string{"Debug", "Info", "Warning", "Error"}},
			{Name: "types", Type: transport.String},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "user", Attr: "actor_id", Target: "Account"},
		},
		Defaults: []transport.Default{
			{Field: "date", Func: func(c *transport.Context, _ transport.Payload) (any, error) { return c.Now, nil }},
			{Field: "level", Value: "Info"},
			{Field: "types", Value: "Journal Transporter Import"},
		},
		Parents: map[string]nested.Parent{
			"article_id": {Column: "target_id", Target: "Article"},
		},
		ParentKeys: articleOnly,
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("target_type = ?", "Article")
		},

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			if level, ok := logLevels[strings.ToLower(data.String("level"))]; ok {
				data["level"] = level
			}
			return nil
		},

		PreProcess: func(_ *transport.Context, data transport.Payload) error {
			data["target_type"] = "Article"
			return nil
		},
	}
}
