package mappers

import (
	"fmt"
	"strings"

	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/storage"
	"journal-transporter/transporter/internal/transport"
)

const (
	defaultIssueTypeCode = "issue"
	defaultSectionName   = "Article"
)

// Journal maps an imported journal. The path is the journal code and must
// be unique; descriptive metadata goes to the journal's settings.
func Journal(env *Env) *transport.Definition[gormModels.Journal] {
	general := constants.SettingGroupGeneral

	return &transport.Definition[gormModels.Journal]{
		Name: "Journal",
		Fields: []transport.Field{
			{Name: "path", Attr: "code", Type: transport.String, Required: true, MaxLength: 40, Unique: true},
			{Name: "title", Attr: "name", Type: transport.String, Required: true},
			{Name: "description", Type: transport.Text},
			{Name: "online_issn", Attr: "issn", Type: transport.String, MaxLength: 9},
			{Name: "print_issn", Type: transport.String, MaxLength: 9},
			{Name: "copyright_notice", Type: transport.Text},
			{Name: "publisher", Type: transport.String},
			{Name: "contact_email", Type: transport.String},
			{Name: "domain", Type: transport.String},
			{Name: "sequence", Type: transport.Integer},
		},
		Defaults: []transport.Default{
			{Field: "domain", Func: func(_ *transport.Context, data transport.Payload) (any, error) {
				return fmt.Sprintf("%s/%s", strings.TrimRight(env.DefaultDomain, "/"), data.String("path")), nil
			}},
			{Field: "sequence", Value: 0},
		},
		Settings: []transport.Setting{
			{Attr: "name", Group: general, Name: "journal_name"},
			{Attr: "description", Group: general, Name: "journal_description"},
			{Attr: "issn", Group: general, Name: "journal_issn"},
			{Attr: "print_issn", Group: general},
			{Attr: "copyright_notice", Group: general},
			{Attr: "publisher", Group: general, Name: "publisher_name"},
			{Attr: "contact_email", Group: general},
		},
		HTMLExempt: []string{"description", "copyright_notice"},

		Present: func(_ *transport.Context, journal *gormModels.Journal, out map[string]any) error {
			out["path"] = journal.Code
			return nil
		},

		PostProcess: func(c *transport.Context, journal *gormModels.Journal, _ transport.Payload) error {
			if env.Files != nil {
				if err := env.Files.EnsureDir(storage.JournalDir(journal.ID)); err != nil {
					return err
				}
			}

			issueType := gormModels.IssueType{JournalID: journal.ID, Code: defaultIssueTypeCode}
			if err := c.Tx().Where(issueType).Attrs(gormModels.IssueType{PrettyName: "Issue"}).FirstOrCreate(&issueType).Error; err != nil {
				return fmt.Errorf("failed to create default issue type: %w", err)
			}

			section := gormModels.Section{JournalID: journal.ID, Name: defaultSectionName}
			if err := c.Tx().Where(section).FirstOrCreate(&section).Error; err != nil {
				return fmt.Errorf("failed to create default section: %w", err)
			}

			if env.Install == nil {
				return nil
			}
			if err := applyDefaultSettings(c, journal.ID, env.Install.JournalSettings); err != nil {
				return err
			}
			return provisionCustomFields(c, journal.ID, env)
		},
	}
}

func applyDefaultSettings(c *transport.Context, journalID uint, defaults []config.JournalSetting) error {
	if c.Settings == nil {
		return nil
	}
	for _, s := range defaults {
		exists, err := c.Settings.Has(c.Ctx, "Journal", journalID, s.Group, s.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := c.Settings.Set(c.Ctx, "Journal", journalID, s.Group, s.Name, s.Value); err != nil {
			return err
		}
	}
	return nil
}

func provisionCustomFields(c *transport.Context, journalID uint, env *Env) error {
	for _, f := range env.Install.CustomFields {
		field := gormModels.Field{JournalID: journalID, Name: f.Name}
		attrs := gormModels.Field{Kind: f.Kind, Order: f.Order, HelpText: f.HelpText, Required: f.Required}
		if err := c.Tx().Where(field).Attrs(attrs).FirstOrCreate(&field).Error; err != nil {
			return fmt.Errorf("failed to provision custom field %q: %w", f.Name, err)
		}
	}
	return nil
}
