package constants

import (
	"database/sql/driver"
	"fmt"
)

// RoleSlug identifies a journal role in the host role table.
type RoleSlug string

const (
	RoleJournalManager RoleSlug = "journal-manager"
	RoleEditor         RoleSlug = "editor"
	RoleSectionEditor  RoleSlug = "section-editor"
	RoleReviewer       RoleSlug = "reviewer"
	RoleAuthor         RoleSlug = "author"
	RoleCopyeditor     RoleSlug = "copyeditor"
	RoleTypesetter     RoleSlug = "typesetter"
	RoleProofreader    RoleSlug = "proofreader"
	RoleProduction     RoleSlug = "production"
	RoleReader         RoleSlug = "reader"
)

func (r RoleSlug) String() string { return string(r) }

// Scan lets GORM read a slug column into a RoleSlug.
func (r *RoleSlug) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = RoleSlug(v)
	case []byte:
		*r = RoleSlug(v)
	default:
		return fmt.Errorf("RoleSlug: cannot scan type %T", src)
	}
	return nil
}

func (r RoleSlug) Value() (driver.Value, error) { return string(r), nil }
