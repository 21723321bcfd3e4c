package transport

import (
	"context"
	"time"

	"journal-transporter/transporter/internal/nested"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ForeignKey declares a reference field. The external field holds a
// reference object ({"target_record_key": "Type:Id"}), a bare key string or
// a list of either; Attr receives the resolved identifier(s).
type ForeignKey struct {
	Field    string
	Attr     string
	Target   string
	Many     bool
	Required bool
}

// Default fills Field when it is missing, null or empty. Func, when set,
// is only called if the default is needed.
type Default struct {
	Field string
	Value any
	Func  func(c *Context, data Payload) (any, error)
}

// Setting routes a validated attribute to the settings store instead of a
// column.
type Setting struct {
	Attr  string
	Group string
	Name  string
}

func (s Setting) name() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Attr
}

// Attachment binds an uploaded part to the created record.
type Attachment[T any] struct {
	Part     string
	Required bool
	Bind     func(c *Context, record *T, upload *Upload, data Payload) error
}

// Upload is one binary part of a multipart import.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SettingsStore persists setting values for a created record.
type SettingsStore interface {
	Set(ctx context.Context, scope string, objectID uint, group, name string, value any) error
	Get(ctx context.Context, scope string, objectID uint, group, name string) (any, bool, error)
	Has(ctx context.Context, scope string, objectID uint, group, name string) (bool, error)
}

// Observer is told about every import outcome.
type Observer interface {
	ObserveImport(entity, outcome string, elapsed time.Duration)
}

// Definition is the static description of one entity mapping. Nil hooks are
// skipped.
type Definition[T any] struct {
	// Name is the entity type used in record keys and the settings scope.
	Name        string
	Fields      []Field
	ForeignKeys []ForeignKey
	Defaults    []Default
	Settings    []Setting
	HTMLExempt  []string
	Attachments []Attachment[T]

	// Parents maps captured ancestor lookups to local columns.
	Parents map[string]nested.Parent
	// ParentKeys restricts which captured ancestors filter this resource.
	ParentKeys []string
	// Scope narrows list and retrieve queries beyond ancestor filters.
	Scope func(db *gorm.DB) *gorm.DB

	// BeforeValidation adjusts the raw payload, keyed by external names.
	BeforeValidation func(c *Context, data Payload) error
	// PreProcess finalizes the validated payload, keyed by attributes.
	PreProcess func(c *Context, data Payload) error
	// Existing returns a record that already satisfies this import. When it
	// returns one nothing is created.
	Existing func(c *Context, data Payload) (*T, error)
	// PostProcess runs after creation and persists its own changes.
	PostProcess func(c *Context, record *T, data Payload) error
	// Present adds computed values to the record's representation.
	Present func(c *Context, record *T, out map[string]any) error
}

// Context is what hooks see of the current request.
type Context struct {
	Ctx      context.Context
	DB       *gorm.DB
	Resolver *Resolver
	Settings SettingsStore
	// Parents holds the ancestor identifiers by lookup ("journal_id").
	Parents map[string]uint
	// Initial is the payload as it was received.
	Initial Payload
	Files   map[string]*Upload
	Now     time.Time
	Log     *zap.SugaredLogger
}

// Parent returns the identifier captured for lookup, or 0.
func (c *Context) Parent(lookup string) uint {
	return c.Parents[lookup]
}

// Tx returns the database bound to the request context.
func (c *Context) Tx() *gorm.DB {
	return c.DB.WithContext(c.Ctx)
}
