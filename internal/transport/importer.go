package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"journal-transporter/transporter/internal/constants"
	"journal-transporter/transporter/internal/logging"
	"journal-transporter/transporter/internal/nested"

	"gorm.io/gorm"
)

// SourceRecordKeyField is the representation field carrying the record key.
const SourceRecordKeyField = "source_record_key"

// Record is satisfied by pointers to host models.
type Record[T any] interface {
	*T
	RecordID() uint
}

// Request is one import as received by the transport layer.
type Request struct {
	Payload Payload
	Lookups nested.Lookups
	Files   map[string]*Upload
}

// Result is the outcome of an import. Created is false when an existing
// record was returned instead.
type Result[T any] struct {
	Record  *T
	Created bool
	Key     string
}

// Deps are the collaborators every importer shares.
type Deps struct {
	DB       *gorm.DB
	Resolver *Resolver
	Settings SettingsStore
	Observer Observer
	Now      func() time.Time
}

// Endpoint is the untyped view of an importer used by HTTP handlers.
type Endpoint interface {
	Name() string
	ImportRecord(ctx context.Context, req Request) (map[string]any, bool, error)
	ListRecords(ctx context.Context, lookups nested.Lookups) ([]map[string]any, error)
	RetrieveRecord(ctx context.Context, lookups nested.Lookups, id uint) (map[string]any, error)
}

// Importer runs a Definition through the import pipeline.
type Importer[T any, P Record[T]] struct {
	def  *Definition[T]
	deps Deps
}

func NewImporter[T any, P Record[T]](def *Definition[T], deps Deps) *Importer[T, P] {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Resolver != nil {
		deps.Resolver.Register(def.Name, new(T))
	}
	return &Importer[T, P]{def: def, deps: deps}
}

func (im *Importer[T, P]) Name() string { return im.def.Name }

func (im *Importer[T, P]) newContext(ctx context.Context, req Request) *Context {
	return &Context{
		Ctx:      ctx,
		DB:       im.deps.DB,
		Resolver: im.deps.Resolver,
		Settings: im.deps.Settings,
		Parents:  map[string]uint{},
		Initial:  req.Payload.Clone(),
		Files:    req.Files,
		Now:      im.deps.Now(),
		Log:      logging.GetLogger().With("entity", im.def.Name),
	}
}

// constraints resolves captured ancestors and confirms each one exists.
func (im *Importer[T, P]) constraints(ctx context.Context, lookups nested.Lookups) (map[string]nested.Constraint, error) {
	constraints, err := nested.Constraints(lookups, im.def.Parents, im.def.ParentKeys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if im.deps.Resolver == nil {
		return constraints, nil
	}
	for _, c := range constraints {
		if err := im.deps.Resolver.Exists(ctx, c.Target, c.ID); err != nil {
			return nil, err
		}
	}
	return constraints, nil
}

// Import maps one payload onto a new record.
func (im *Importer[T, P]) Import(ctx context.Context, req Request) (*Result[T], error) {
	start := time.Now()
	res, err := im.run(ctx, req)

	outcome := "created"
	switch {
	case err != nil:
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			outcome = "invalid"
			logging.Warn("Import rejected", "entity", im.def.Name, "errors", verr.Fields)
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
			logging.Warn("Import reference not found", "entity", im.def.Name, "error", err.Error())
		default:
			outcome = "error"
			logging.Error("Import failed", "entity", im.def.Name, "error", err.Error())
		}
	case !res.Created:
		outcome = "existing"
		logging.Info("Import matched existing record", "entity", im.def.Name, "key", res.Key)
	default:
		logging.Info("Import created record", "entity", im.def.Name, "key", res.Key)
	}

	if im.deps.Observer != nil {
		im.deps.Observer.ObserveImport(im.def.Name, outcome, time.Since(start))
	}
	return res, err
}

func (im *Importer[T, P]) run(ctx context.Context, req Request) (*Result[T], error) {
	def := im.def
	c := im.newContext(ctx, req)

	constraints, err := im.constraints(ctx, req.Lookups)
	if err != nil {
		return nil, err
	}
	for lookup, con := range constraints {
		c.Parents[lookup] = con.ID
	}

	data := req.Payload.Clone()
	if data == nil {
		data = Payload{}
	}

	if err := im.extractForeignKeys(c, data); err != nil {
		return nil, err
	}

	if def.BeforeValidation != nil {
		if err := def.BeforeValidation(c, data); err != nil {
			return nil, err
		}
	}

	stripPayload(data, def.HTMLExempt)

	for _, d := range def.Defaults {
		if !data.Blank(d.Field) {
			continue
		}
		value := d.Value
		if d.Func != nil {
			if value, err = d.Func(c, data); err != nil {
				return nil, err
			}
		}
		data[d.Field] = value
	}

	validated, verr := validate(def.Fields, def.ForeignKeys, data)
	if verr == nil {
		verr = &ValidationError{}
	}
	for _, att := range def.Attachments {
		if att.Required && req.Files[att.Part] == nil {
			verr.Add(att.Part, constants.MsgNoFileSubmitted)
		}
	}
	if err := im.checkUnique(c, validated, verr); err != nil {
		return nil, err
	}
	if !verr.Empty() {
		return nil, verr
	}

	for _, con := range constraints {
		validated[con.Column] = con.ID
	}

	if def.PreProcess != nil {
		if err := def.PreProcess(c, validated); err != nil {
			return nil, err
		}
	}

	if def.Existing != nil {
		existing, err := def.Existing(c, validated)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &Result[T]{Record: existing, Key: im.key(existing)}, nil
		}
	}

	settings := map[Setting]any{}
	for _, s := range def.Settings {
		if v, ok := validated.Pop(s.Attr); ok {
			settings[s] = v
		}
	}

	record := new(T)
	if err := decodeInto(validated, record); err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", def.Name, err)
	}
	if err := c.Tx().Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", def.Name, err)
	}
	id := P(record).RecordID()

	if im.deps.Settings != nil {
		for s, v := range settings {
			if isFalsy(v) {
				continue
			}
			if err := im.deps.Settings.Set(ctx, def.Name, id, s.Group, s.name(), v); err != nil {
				return nil, err
			}
		}
	}

	for _, att := range def.Attachments {
		upload := req.Files[att.Part]
		if upload == nil || att.Bind == nil {
			continue
		}
		if err := att.Bind(c, record, upload, validated); err != nil {
			return nil, fmt.Errorf("failed to attach %s to %s: %w", att.Part, def.Name, err)
		}
	}

	if def.PostProcess != nil {
		if err := def.PostProcess(c, record, validated); err != nil {
			return nil, fmt.Errorf("post-processing %s: %w", im.key(record), err)
		}
	}

	return &Result[T]{Record: record, Created: true, Key: im.key(record)}, nil
}

// extractForeignKeys replaces reference fields with resolved identifiers.
// A bare identifier already under the attribute is checked the same way.
func (im *Importer[T, P]) extractForeignKeys(c *Context, data Payload) error {
	for _, fk := range im.def.ForeignKeys {
		raw, present := data.Pop(fk.Field)
		if !present {
			if err := im.checkBareID(c, fk, data); err != nil {
				return err
			}
			continue
		}

		if fk.Many {
			items, _ := raw.([]any)
			if raw != nil && items == nil {
				items = []any{raw}
			}
			ids := make([]any, 0, len(items))
			for _, item := range items {
				id, ok, err := im.resolve(c, fk.Target, item)
				if err != nil {
					return err
				}
				if ok {
					ids = append(ids, id)
				}
			}
			data[fk.Attr] = ids
			continue
		}

		id, ok, err := im.resolve(c, fk.Target, raw)
		if err != nil {
			return err
		}
		if ok {
			data[fk.Attr] = id
		}
	}
	return nil
}

func (im *Importer[T, P]) checkBareID(c *Context, fk ForeignKey, data Payload) error {
	raw, ok := data[fk.Attr]
	if !ok || fk.Many {
		return nil
	}
	n, ok := toInt(raw)
	if !ok || n <= 0 {
		delete(data, fk.Attr)
		return nil
	}
	if im.deps.Resolver != nil {
		if err := im.deps.Resolver.Exists(c.Ctx, fk.Target, uint(n)); err != nil {
			return err
		}
	}
	data[fk.Attr] = uint(n)
	return nil
}

func (im *Importer[T, P]) resolve(c *Context, target string, ref any) (uint, bool, error) {
	if im.deps.Resolver == nil {
		id, ok := referenceID(ref)
		return id, ok, nil
	}
	return im.deps.Resolver.Resolve(c.Ctx, target, ref)
}

func (im *Importer[T, P]) checkUnique(c *Context, validated Payload, verr *ValidationError) error {
	for _, f := range im.def.Fields {
		if !f.Unique {
			continue
		}
		v, ok := validated[f.attr()]
		if !ok || isBlank(v) {
			continue
		}
		var count int64
		if err := c.Tx().Model(new(T)).Where(fmt.Sprintf("%s = ?", f.attr()), v).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check %s uniqueness: %w", f.Name, err)
		}
		if count > 0 {
			verr.Add(f.Name, fmt.Sprintf("%s with this %s already exists.", im.def.Name, f.Name))
		}
	}
	return nil
}

func (im *Importer[T, P]) scoped(ctx context.Context) *gorm.DB {
	query := im.deps.DB.WithContext(ctx)
	if im.def.Scope != nil {
		query = im.def.Scope(query)
	}
	return query
}

func (im *Importer[T, P]) key(record *T) string {
	return SourceRecordKey(im.def.Name, P(record).RecordID())
}

// List returns every record under the captured ancestors.
func (im *Importer[T, P]) List(ctx context.Context, lookups nested.Lookups) ([]T, error) {
	constraints, err := im.constraints(ctx, lookups)
	if err != nil {
		return nil, err
	}

	var rows []T
	query := im.scoped(ctx).Order("id")
	if cols := nested.Columns(constraints); len(cols) > 0 {
		query = query.Where(cols)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", im.def.Name, err)
	}
	return rows, nil
}

// Get returns one record under the captured ancestors.
func (im *Importer[T, P]) Get(ctx context.Context, lookups nested.Lookups, id uint) (*T, error) {
	constraints, err := im.constraints(ctx, lookups)
	if err != nil {
		return nil, err
	}

	record := new(T)
	query := im.scoped(ctx).Where("id = ?", id)
	if cols := nested.Columns(constraints); len(cols) > 0 {
		query = query.Where(cols)
	}
	err = query.First(record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %d: %w", im.def.Name, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", im.def.Name, err)
	}
	return record, nil
}

// Represent renders a record with its source record key.
func (im *Importer[T, P]) Represent(ctx context.Context, record *T) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", im.def.Name, err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", im.def.Name, err)
	}
	out[SourceRecordKeyField] = im.key(record)
	if err := im.presentSettings(ctx, P(record).RecordID(), out); err != nil {
		return nil, err
	}

	if im.def.Present != nil {
		c := im.newContext(ctx, Request{})
		if err := im.def.Present(c, record, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// presentSettings echoes stored setting values under their external field names.
func (im *Importer[T, P]) presentSettings(ctx context.Context, id uint, out map[string]any) error {
	if im.deps.Settings == nil {
		return nil
	}
	for _, s := range im.def.Settings {
		v, ok, err := im.deps.Settings.Get(ctx, im.def.Name, id, s.Group, s.name())
		if err != nil {
			return err
		}
		if ok {
			out[im.externalName(s.Attr)] = v
		}
	}
	return nil
}

func (im *Importer[T, P]) externalName(attr string) string {
	for _, f := range im.def.Fields {
		if f.attr() == attr {
			return f.Name
		}
	}
	return attr
}

func (im *Importer[T, P]) ImportRecord(ctx context.Context, req Request) (map[string]any, bool, error) {
	res, err := im.Import(ctx, req)
	if err != nil {
		return nil, false, err
	}
	out, err := im.Represent(ctx, res.Record)
	return out, res.Created, err
}

func (im *Importer[T, P]) ListRecords(ctx context.Context, lookups nested.Lookups) ([]map[string]any, error) {
	rows, err := im.List(ctx, lookups)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(rows))
	for i := range rows {
		item, err := im.Represent(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (im *Importer[T, P]) RetrieveRecord(ctx context.Context, lookups nested.Lookups, id uint) (map[string]any, error) {
	record, err := im.Get(ctx, lookups, id)
	if err != nil {
		return nil, err
	}
	return im.Represent(ctx, record)
}

// decodeInto copies attribute-keyed values onto a model through its JSON
// field names. Keys without a matching field are ignored.
func decodeInto(values Payload, dst any) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
