// Package mappers declares how each imported entity maps onto the host
// data model.
package mappers

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/storage"
	"journal-transporter/transporter/internal/transport"

	"gorm.io/gorm"
)

// Env carries what mapping hooks need beyond the request.
type Env struct {
	Files         *storage.LocalStore
	Install       *config.Install
	DefaultDomain string
}

var (
	journalParent = map[string]nested.Parent{
		"journal_id": {Column: "journal_id", Target: "Journal"},
	}
	articleParent = map[string]nested.Parent{
		"article_id": {Column: "article_id", Target: "Article"},
	}
	articleOnly = []string{"article_id"}
)

// notFound turns gorm's missing-row error into a nil result.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// uintValue reads an identifier that validation or ancestor merging left in
// the payload.
func uintValue(data transport.Payload, key string) uint {
	if id := data.Uint(key); id != nil {
		return *id
	}
	return 0
}

func titleCase(s string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
