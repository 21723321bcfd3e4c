// Package nested builds hierarchical REST routes on chi and turns captured
// parent path parameters into ancestor constraints.
package nested

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// LookupPrefix marks a path parameter captured from a parent segment.
const LookupPrefix = "parent_lookup_"

var (
	// ErrUnknownAncestor means a captured ancestor has no filter column on the resource.
	ErrUnknownAncestor = errors.New("unknown ancestor lookup")
	// ErrInvalidAncestor means an ancestor identifier is not a valid key.
	ErrInvalidAncestor = errors.New("invalid ancestor identifier")
)

// Lookups maps an ancestor name ("journal_id") to its raw path value.
type Lookups map[string]string

// Parent declares how an ancestor filters a resource: the local column it
// constrains and the entity type it refers to.
type Parent struct {
	Column string
	Target string
}

// FromRequest collects every parent_lookup_ parameter chi captured for r.
func FromRequest(r *http.Request) Lookups {
	out := Lookups{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return out
	}
	for i, key := range rctx.URLParams.Keys {
		if strings.HasPrefix(key, LookupPrefix) && i < len(rctx.URLParams.Values) {
			out[strings.TrimPrefix(key, LookupPrefix)] = rctx.URLParams.Values[i]
		}
	}
	return out
}

// Constraint is one resolved ancestor filter.
type Constraint struct {
	Parent
	ID uint
}

// Constraints resolves lookups into column filters. With a nil allow-list
// every captured lookup applies and each must be declared in parents;
// otherwise only the allowed lookups that were captured are used.
func Constraints(lookups Lookups, parents map[string]Parent, allow []string) (map[string]Constraint, error) {
	keys := allow
	if keys == nil {
		keys = make([]string, 0, len(lookups))
		for k := range lookups {
			keys = append(keys, k)
		}
	}

	out := make(map[string]Constraint, len(keys))
	for _, key := range keys {
		raw, captured := lookups[key]
		if !captured {
			continue
		}
		parent, ok := parents[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAncestor, key)
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidAncestor, key, raw)
		}
		out[key] = Constraint{Parent: parent, ID: uint(id)}
	}
	return out, nil
}

// Columns flattens constraints into a column -> id filter map.
func Columns(constraints map[string]Constraint) map[string]any {
	out := make(map[string]any, len(constraints))
	for _, c := range constraints {
		out[c.Column] = c.ID
	}
	return out
}
