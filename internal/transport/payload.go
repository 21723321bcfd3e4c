package transport

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Payload is one import record. Before validation keys are external field
// names; after validation they are host attribute names.
type Payload map[string]any

// Clone makes a shallow copy.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Has reports whether key is present, even with a null value.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Pop removes key and returns its value.
func (p Payload) Pop(key string) (any, bool) {
	v, ok := p[key]
	delete(p, key)
	return v, ok
}

// Blank reports whether key is missing, null or an empty string. An
// explicit false is not blank.
func (p Payload) Blank(key string) bool {
	return isBlank(p[key])
}

// Default sets key to value when the current value is blank.
func (p Payload) Default(key string, value any) {
	if p.Blank(key) {
		p[key] = value
	}
}

// String returns the value as a string, or "" when absent.
func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		b, _ := json.Marshal(v)
		return strings.Trim(string(b), `"`)
	}
}

// Bool interprets common truthy encodings.
func (p Payload) Bool(key string) bool {
	b, _ := toBool(p[key])
	return b
}

// Time returns a datetime value, parsing raw strings when needed.
func (p Payload) Time(key string) *time.Time {
	switch v := p[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if t, err := ParseDateTime(v); err == nil {
			return &t
		}
	}
	return nil
}

// Uint returns an identifier value.
func (p Payload) Uint(key string) *uint {
	switch v := p[key].(type) {
	case uint:
		return &v
	case *uint:
		return v
	}
	if n, ok := toInt(p[key]); ok && n > 0 {
		u := uint(n)
		return &u
	}
	return nil
}

// Uints returns a list of identifiers.
func (p Payload) Uints(key string) []uint {
	switch v := p[key].(type) {
	case []uint:
		return v
	case []any:
		out := make([]uint, 0, len(v))
		for _, item := range v {
			if n, ok := toInt(item); ok && n > 0 {
				out = append(out, uint(n))
			}
		}
		return out
	}
	return nil
}

// Int returns an integer value.
func (p Payload) Int(key string) (int, bool) {
	n, ok := toInt(p[key])
	return int(n), ok
}

// Float returns a numeric value.
func (p Payload) Float(key string) (float64, bool) {
	return toFloat(p[key])
}

// Strings returns a list of strings; a bare string is split on commas.
func (p Payload) Strings(key string) []string {
	var raw []string
	switch v := p[key].(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

// isFalsy mirrors what the settings store skips: blanks, false and zero.
func isFalsy(v any) bool {
	if isBlank(v) {
		return true
	}
	switch t := v.(type) {
	case bool:
		return !t
	case []any:
		return len(t) == 0
	}
	if f, ok := toFloat(v); ok {
		return f == 0
	}
	return false
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case float64:
		if t == float64(int64(t)) {
			return int64(t), true
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "on", "t", "y":
			return true, true
		case "false", "0", "no", "off", "f", "n":
			return false, true
		}
	default:
		if n, ok := toInt(v); ok && (n == 0 || n == 1) {
			return n == 1, true
		}
	}
	return false, false
}
