package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/constants"

	"gorm.io/gorm"
)

const resolvedTTL = 10 * time.Minute

// Resolver turns record keys into local identifiers and confirms the
// referenced rows exist. Confirmed references are cached.
type Resolver struct {
	db    *gorm.DB
	cache common.CacheInterface

	mu    sync.RWMutex
	types map[string]any
}

func NewResolver(db *gorm.DB, cache common.CacheInterface) *Resolver {
	return &Resolver{db: db, cache: cache, types: map[string]any{}}
}

// Register associates a record key type name with its model.
func (r *Resolver) Register(typeName string, model any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[typeName] = model
}

func (r *Resolver) model(typeName string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.types[typeName]
	return m, ok
}

// Resolve returns the local identifier ref points at. ref may be a
// reference object, a record key or a bare identifier. ok is false when ref
// is absent or malformed. A well-formed key whose row does not exist in
// target's table returns ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, target string, ref any) (id uint, ok bool, err error) {
	id, ok = referenceID(ref)
	if !ok {
		return 0, false, nil
	}
	if err := r.Exists(ctx, target, id); err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// Exists confirms that row id exists for typeName. Unregistered types are
// not checked.
func (r *Resolver) Exists(ctx context.Context, typeName string, id uint) error {
	model, known := r.model(typeName)
	if !known {
		return nil
	}

	cacheKey := fmt.Sprintf("%s%s", constants.CachePrefixRecordKey, SourceRecordKey(typeName, id))
	_, err := r.cache.GetOrSet(cacheKey, resolvedTTL, func() (any, error) {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return true, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%s %d: %w", typeName, id, ErrNotFound)
		}
		return fmt.Errorf("failed to resolve %s %d: %w", typeName, id, err)
	}
	return nil
}
