package mappers

import (
	"encoding/json"
	"fmt"
	"strings"

	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/storage"
	"journal-transporter/transporter/internal/transport"

	"gorm.io/datatypes"
)

// articleStages maps the migration tool's stage vocabulary to host stages.
var articleStages = map[string]string{
	"draft":              constants.StageUnsubmitted,
	"submitted":          constants.StageUnassigned,
	"assigned":           constants.StageAssigned,
	"review":             constants.StageUnderReview,
	"revision":           constants.StageUnderRevision,
	"rejected":           constants.StageRejected,
	"accepted":           constants.StageAccepted,
	"copyediting":        constants.StageEditorCopyediting,
	"author_copyediting": constants.StageAuthorCopyediting,
	"typesetting":        constants.StageTypesetting,
	"proofing":           constants.StageProofing,
	"published":          constants.StagePublished,
}

// Article maps a submission of the parent journal together with its issue
// memberships, keywords, identifiers, licence and custom field answers.
func Article(env *Env) *transport.Definition[gormModels.Article] {
	fields := []transport.Field{
		{Name: "title", Type: transport.String, Required: true, NotNull: true},
		{Name: "abstract", Type: transport.Text},
		{Name: "language", Type: transport.String, MaxLength: 200},
		{Name: "stage", Type: transport.String},
		{Name: "page_numbers", Type: transport.String},
		{Name: "first_page", Type: transport.Integer},
		{Name: "last_page", Type: transport.Integer},
		{Name: "sequence", Type: transport.Integer},
		{Name: "keywords", Type: transport.List},
		{Name: "doi", Type: transport.String},
		{Name: "identifiers", Type: transport.Object},
		{Name: "license", Type: transport.Object},
		{Name: "custom_fields", Type: transport.Object},
		{Name: "source", Type: transport.String},
	}
	for _, date := range articleTimeline {
		fields = append(fields, transport.Field{Name: date, Type: transport.DateTime})
	}

	return &transport.Definition[gormModels.Article]{
		Name:   "Article",
		Fields: fields,
		ForeignKeys: []transport.ForeignKey{
			{Field: "section", Attr: "section_id", Target: "Section"},
			{Field: "primary_issue", Attr: "primary_issue_id", Target: "Issue"},
			{Field: "issues", Attr: "issue_ids", Target: "Issue", Many: true},
			{Field: "owner", Attr: "owner_id", Target: "Account"},
		},
		Defaults:   []transport.Default{{Field: "stage", Value: "published"}},
		HTMLExempt: []string{"abstract"},
		Parents:    journalParent,

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			if raw, ok := data["keywords"].(string); ok {
				data["keywords"] = splitList(raw)
			}
			return nil
		},

		PreProcess: func(c *transport.Context, data transport.Payload) error {
			deriveTimeline(data)

			stage, ok := articleStages[strings.ToLower(strings.TrimSpace(data.String("stage")))]
			if !ok {
				stage = stageFromDates(data)
			}
			data["stage"] = stage

			if data.Uint("primary_issue_id") == nil {
				if issues := data.Uints("issue_ids"); len(issues) > 0 {
					data["primary_issue_id"] = issues[0]
				}
			}
			return nil
		},

		PostProcess: func(c *transport.Context, article *gormModels.Article, data transport.Payload) error {
			if env.Files != nil {
				if err := env.Files.EnsureDir(storage.ArticleDir(article.ID)); err != nil {
					return err
				}
			}
			steps := []func(*transport.Context, *gormModels.Article, transport.Payload) error{
				attachIssues,
				attachKeywords,
				attachIdentifiers,
				attachLicence,
				attachFieldAnswers,
				logArticleImport,
			}
			for _, step := range steps {
				if err := step(c, article, data); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func attachIssues(c *transport.Context, article *gormModels.Article, data transport.Payload) error {
	issues := data.Uints("issue_ids")
	if article.PrimaryIssueID != nil && !containsID(issues, *article.PrimaryIssueID) {
		issues = append(issues, *article.PrimaryIssueID)
	}

	for _, issueID := range issues {
		link := gormModels.ArticleIssue{ArticleID: article.ID, IssueID: issueID}
		if err := c.Tx().Where(link).FirstOrCreate(&link).Error; err != nil {
			return fmt.Errorf("failed to add article to issue %d: %w", issueID, err)
		}
	}

	if article.PrimaryIssueID == nil {
		return nil
	}
	order, ok := data.Int("sequence")
	if !ok {
		return nil
	}
	ordering := gormModels.ArticleOrdering{ArticleID: article.ID, IssueID: *article.PrimaryIssueID}
	err := c.Tx().Where(ordering).
		Assign(gormModels.ArticleOrdering{SectionID: article.SectionID, Order: order}).
		FirstOrCreate(&ordering).Error
	if err != nil {
		return fmt.Errorf("failed to order article in issue: %w", err)
	}
	return nil
}

func attachKeywords(c *transport.Context, article *gormModels.Article, data transport.Payload) error {
	for i, word := range data.Strings("keywords") {
		var keyword gormModels.Keyword
		err := c.Tx().Where("LOWER(word) = ?", strings.ToLower(word)).First(&keyword).Error
		if err = notFound(err); err != nil {
			return fmt.Errorf("failed to look up keyword %q: %w", word, err)
		}
		if keyword.ID == 0 {
			keyword = gormModels.Keyword{Word: word}
			if err := c.Tx().Create(&keyword).Error; err != nil {
				return fmt.Errorf("failed to create keyword %q: %w", word, err)
			}
		}

		link := gormModels.ArticleKeyword{ArticleID: article.ID, KeywordID: keyword.ID}
		if err := c.Tx().Where(link).Attrs(gormModels.ArticleKeyword{Order: i}).FirstOrCreate(&link).Error; err != nil {
			return fmt.Errorf("failed to attach keyword %q: %w", word, err)
		}
	}
	return nil
}

func attachIdentifiers(c *transport.Context, article *gormModels.Article, data transport.Payload) error {
	ids := map[string]string{}
	if doi := data.String("doi"); doi != "" {
		ids["doi"] = doi
	}
	if extra, ok := data["identifiers"].(map[string]any); ok {
		for kind := range extra {
			if s := transport.Payload(extra).String(kind); s != "" {
				ids[strings.ToLower(kind)] = s
			}
		}
	}

	for kind, value := range ids {
		ident := gormModels.Identifier{ArticleID: article.ID, IDType: kind}
		if err := c.Tx().Where(ident).Assign(gormModels.Identifier{Identifier: value}).FirstOrCreate(&ident).Error; err != nil {
			return fmt.Errorf("failed to save %s identifier: %w", kind, err)
		}
	}
	return nil
}

func attachLicence(c *transport.Context, article *gormModels.Article, data transport.Payload) error {
	raw, ok := data["license"].(map[string]any)
	if !ok {
		return nil
	}
	terms := transport.Payload(raw)
	url := terms.String("url")
	name := terms.String("name")
	if url == "" && name == "" {
		return nil
	}

	licence := gormModels.Licence{JournalID: article.JournalID}
	query := c.Tx().Where(&licence)
	if url != "" {
		query = query.Where("url = ?", url)
	} else {
		query = query.Where("name = ?", name)
	}
	attrs := gormModels.Licence{Name: name, ShortName: terms.String("short_name"), URL: url}
	if attrs.Name == "" {
		attrs.Name = url
	}
	if attrs.ShortName == "" {
		attrs.ShortName = attrs.Name
	}
	if err := query.Attrs(attrs).FirstOrCreate(&licence).Error; err != nil {
		return fmt.Errorf("failed to resolve licence: %w", err)
	}

	article.LicenseID = &licence.ID
	return c.Tx().Model(article).Update("license_id", licence.ID).Error
}

func attachFieldAnswers(c *transport.Context, article *gormModels.Article, data transport.Payload) error {
	answers, ok := data["custom_fields"].(map[string]any)
	if !ok || len(answers) == 0 {
		return nil
	}

	var fields []gormModels.Field
	if err := c.Tx().Where("journal_id = ?", article.JournalID).Find(&fields).Error; err != nil {
		return fmt.Errorf("failed to load custom fields: %w", err)
	}
	for _, field := range fields {
		answer := transport.Payload(answers).String(field.Name)
		if answer == "" {
			continue
		}
		row := gormModels.FieldAnswer{FieldID: field.ID, ArticleID: article.ID}
		if err := c.Tx().Where(row).Assign(gormModels.FieldAnswer{Answer: answer}).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("failed to answer custom field %q: %w", field.Name, err)
		}
	}
	return nil
}

// logArticleImport records where the article came from.
func logArticleImport(c *transport.Context, article *gormModels.Article, data transport.Payload) error {
	meta, err := json.Marshal(map[string]any{
		"source":      data.String("source"),
		"stage":       article.Stage,
		"imported_at": c.Now,
	})
	if err != nil {
		return err
	}

	now := c.Now
	entry := gormModels.LogEntry{
		TargetType:  "Article",
		TargetID:    article.ID,
		Types:       "Journal Transporter Import",
		Date:        &now,
		Description: fmt.Sprintf("Article %q imported by the journal transporter.", article.Title),
		Level:       "Info",
		Subject:     "Article imported",
		Metadata:    datatypes.JSON(meta),
	}
	if err := c.Tx().Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to log article import: %w", err)
	}
	return nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func splitList(raw string) []any {
	var out []any
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
