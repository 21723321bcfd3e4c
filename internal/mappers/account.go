package mappers

import (
	"fmt"
	"strings"

	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/transport"

	"gorm.io/gorm"
)

// User maps an account. Accounts are keyed by email: importing an address
// that already exists, in any letter case, returns the existing account.
func User() *transport.Definition[gormModels.Account] {
	return &transport.Definition[gormModels.Account]{
		Name: "Account",
		Fields: []transport.Field{
			{Name: "email", Type: transport.Email, Required: true},
			{Name: "first_name", Type: transport.String, Required: true},
			{Name: "last_name", Type: transport.String, Required: true},
			{Name: "middle_name", Type: transport.String},
			{Name: "username", Type: transport.String},
			{Name: "affiliation", Attr: "institution", Type: transport.String, MaxLength: 1000},
			{Name: "department", Type: transport.String, MaxLength: 300},
			{Name: "salutation", Type: transport.String, MaxLength: 10},
			{Name: "country", Type: transport.String},
			{Name: "biography", Type: transport.Text},
			{Name: "signature", Type: transport.Text},
			{Name: "orcid", Type: transport.String, MaxLength: 40},
			{Name: "interests", Type: transport.String},
			{Name: "is_active", Type: transport.Boolean},
		},
		Defaults: []transport.Default{
			{Field: "username", Func: func(_ *transport.Context, data transport.Payload) (any, error) {
				return strings.ToLower(data.String("email")), nil
			}},
		},

		BeforeValidation: func(c *transport.Context, data transport.Payload) error {
			if email, ok := data["email"].(string); ok {
				data["email"] = strings.TrimSpace(email)
			}
			if list, ok := data["interests"].([]any); ok {
				data["interests"] = strings.Join(transport.Payload{"i": list}.Strings("i"), ",")
			}
			return normalizeCountry(c, data)
		},

		Existing: func(c *transport.Context, data transport.Payload) (*gormModels.Account, error) {
			return accountByEmail(c.Tx(), data.String("email"))
		},

		PostProcess: func(c *transport.Context, account *gormModels.Account, data transport.Payload) error {
			for _, name := range data.Strings("interests") {
				interest := gormModels.Interest{Name: name}
				if err := c.Tx().Where(interest).FirstOrCreate(&interest).Error; err != nil {
					return fmt.Errorf("failed to create interest %q: %w", name, err)
				}
				link := gormModels.AccountInterest{AccountID: account.ID, InterestID: interest.ID}
				if err := c.Tx().Where(link).FirstOrCreate(&link).Error; err != nil {
					return fmt.Errorf("failed to link interest %q: %w", name, err)
				}
			}
			return nil
		},
	}
}

func accountByEmail(db *gorm.DB, email string) (*gormModels.Account, error) {
	if email == "" {
		return nil, nil
	}
	var account gormModels.Account
	err := db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

// normalizeCountry turns a free-text country into its code using the
// country table. Unknown countries are dropped.
func normalizeCountry(c *transport.Context, data transport.Payload) error {
	raw := strings.TrimSpace(data.String("country"))
	if raw == "" {
		delete(data, "country")
		return nil
	}

	var country gormModels.Country
	err := c.Tx().Where("LOWER(code) = ? OR LOWER(name) = ?", strings.ToLower(raw), strings.ToLower(raw)).First(&country).Error
	if err = notFound(err); err != nil {
		return fmt.Errorf("failed to look up country %q: %w", raw, err)
	}
	if country.ID == 0 {
		c.Log.Warnw("Unknown country dropped", "country", raw)
		delete(data, "country")
		return nil
	}
	data["country"] = country.Code
	return nil
}

// Author maps a frozen authorship record of the parent article. When the
// author matches an account, the account's author order is recorded once.
func Author() *transport.Definition[gormModels.FrozenAuthor] {
	return &transport.Definition[gormModels.FrozenAuthor]{
		Name: "FrozenAuthor",
		Fields: []transport.Field{
			{Name: "first_name", Type: transport.String},
			{Name: "middle_name", Type: transport.String},
			{Name: "last_name", Type: transport.String},
			{Name: "email", Attr: "frozen_email", Type: transport.String},
			{Name: "affiliation", Attr: "institution", Type: transport.String, MaxLength: 1000},
			{Name: "department", Type: transport.String},
			{Name: "country", Type: transport.String},
			{Name: "biography", Attr: "frozen_biography", Type: transport.Text},
			{Name: "orcid", Attr: "frozen_orcid", Type: transport.String},
			{Name: "sequence", Attr: "order", Type: transport.Integer},
			{Name: "corresponding", Type: transport.Boolean},
			{Name: "is_corporate", Type: transport.Boolean},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "user", Attr: "author_id", Target: "Account"},
			{Field: "user_id", Attr: "author_id", Target: "Account"},
		},
		Defaults:   []transport.Default{{Field: "sequence", Value: 0}},
		Parents:    articleParent,
		ParentKeys: articleOnly,

		BeforeValidation: normalizeCountry,

		PreProcess: func(c *transport.Context, data transport.Payload) error {
			if data.Uint("author_id") != nil {
				return nil
			}
			account, err := accountByEmail(c.Tx(), data.String("frozen_email"))
			if err != nil {
				return err
			}
			if account != nil {
				data["author_id"] = account.ID
			}
			return nil
		},

		PostProcess: func(c *transport.Context, author *gormModels.FrozenAuthor, data transport.Payload) error {
			if author.AuthorID == nil {
				return nil
			}
			order := gormModels.ArticleAuthorOrder{ArticleID: author.ArticleID, AuthorID: *author.AuthorID}
			if err := c.Tx().Where(order).Attrs(gormModels.ArticleAuthorOrder{Order: author.Order}).FirstOrCreate(&order).Error; err != nil {
				return fmt.Errorf("failed to record author order: %w", err)
			}

			if data.Bool("corresponding") {
				err := c.Tx().Model(&gormModels.Article{}).Where("id = ?", author.ArticleID).
					Update("correspondence_author_id", *author.AuthorID).Error
				if err != nil {
					return fmt.Errorf("failed to set correspondence author: %w", err)
				}
			}
			return nil
		},
	}
}
