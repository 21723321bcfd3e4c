package mappers

import (
	"fmt"
	"strings"

	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/transport"
)

// roleAliases maps source role names onto host role slugs.
var roleAliases = map[string]constants.RoleSlug{
	"manager":            constants.RoleJournalManager,
	"journal_manager":    constants.RoleJournalManager,
	"journal-manager":    constants.RoleJournalManager,
	"editor":             constants.RoleEditor,
	"section_editor":     constants.RoleSectionEditor,
	"section-editor":     constants.RoleSectionEditor,
	"reviewer":           constants.RoleReviewer,
	"author":             constants.RoleAuthor,
	"copyeditor":         constants.RoleCopyeditor,
	"layout_editor":      constants.RoleTypesetter,
	"typesetter":         constants.RoleTypesetter,
	"proofreader":        constants.RoleProofreader,
	"production":         constants.RoleProduction,
	"production_manager": constants.RoleProduction,
	"reader":             constants.RoleReader,
	"subscriber":         constants.RoleReader,
}

func roleSlugs() []string {
	seen := map[constants.RoleSlug]bool{}
	var out []string
	for _, slug := range roleAliases {
		if !seen[slug] {
			seen[slug] = true
			out = append(out, slug.String())
		}
	}
	return out
}

// Role maps a user's role on the parent journal. The role itself is found
// or created by slug, and a user holding it already is not granted it twice.
func Role() *transport.Definition[gormModels.AccountRole] {
	return &transport.Definition[gormModels.AccountRole]{
		Name: "AccountRole",
		Fields: []transport.Field{
			{Name: "role", Attr: "role_slug", Type: transport.Choice, Required: true, Choices: roleSlugs()},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "user", Attr: "user_id", Target: "Account", Required: true},
		},
		Parents: journalParent,

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			raw := strings.ToLower(strings.TrimSpace(data.String("role")))
			if slug, ok := roleAliases[raw]; ok {
				data["role"] = slug.String()
			}
			return nil
		},

		PreProcess: func(c *transport.Context, data transport.Payload) error {
			slug, _ := data.Pop("role_slug")
			role := gormModels.Role{Slug: constants.RoleSlug(fmt.Sprint(slug))}
			if err := c.Tx().Where(role).Attrs(gormModels.Role{Name: titleCase(role.Slug.String())}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to resolve role %q: %w", role.Slug, err)
			}
			data["role_id"] = role.ID
			return nil
		},

		Existing: func(c *transport.Context, data transport.Payload) (*gormModels.AccountRole, error) {
			var existing gormModels.AccountRole
			err := c.Tx().Where(&gormModels.AccountRole{
				UserID:    uintValue(data, "user_id"),
				JournalID: uintValue(data, "journal_id"),
				RoleID:    uintValue(data, "role_id"),
			}).First(&existing).Error
			if err != nil {
				return nil, notFound(err)
			}
			return &existing, nil
		},

		Present: func(c *transport.Context, ar *gormModels.AccountRole, out map[string]any) error {
			var role gormModels.Role
			if err := notFound(c.Tx().First(&role, ar.RoleID).Error); err != nil {
				return err
			}
			out["role"] = role.Slug.String()
			return nil
		},
	}
}
