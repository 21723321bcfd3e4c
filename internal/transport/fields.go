package transport

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"journal-transporter/transporter/internal/constants"
)

// FieldType is the declared type an incoming value is validated against.
type FieldType int

const (
	String FieldType = iota
	Text
	Email
	Integer
	Float
	Boolean
	DateTime
	Date
	Choice
	List
	Object
)

// Field is one row of a mapping table: an external field name, the host
// attribute it populates and the constraints it must satisfy.
type Field struct {
	Name string
	// Attr is the host attribute; empty means the same as Name.
	Attr       string
	Type       FieldType
	Required   bool
	NotNull    bool
	AllowBlank bool
	MaxLength  int
	Choices    []string
	// Unique is checked against existing rows before anything is created.
	Unique bool
}

func (f Field) attr() string {
	if f.Attr != "" {
		return f.Attr
	}
	return f.Name
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime accepts the ISO-8601 variants the migration tool emits.
// Values without an offset are taken as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if _, offset := t.Zone(); offset == 0 {
				t = t.UTC()
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// DateOf truncates t to midnight of its calendar day in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// validate checks data (external names) against fields and returns the
// values keyed by host attribute.
func validate(fields []Field, foreignKeys []ForeignKey, data Payload) (Payload, *ValidationError) {
	out := Payload{}
	verr := &ValidationError{}

	for _, f := range fields {
		raw, present := data[f.Name]
		if !present {
			if f.Required {
				verr.Add(f.Name, constants.MsgFieldRequired)
			}
			continue
		}
		if raw == nil {
			if f.Required || f.NotNull {
				verr.Add(f.Name, constants.MsgFieldNull)
				continue
			}
			out[f.attr()] = nil
			continue
		}

		v, msg := coerce(f, raw)
		if msg != "" {
			verr.Add(f.Name, msg)
			continue
		}
		out[f.attr()] = v
	}

	for _, fk := range foreignKeys {
		v, present := data[fk.Attr]
		if !present || v == nil {
			if fk.Required {
				verr.Add(fk.Field, constants.MsgFieldRequired)
			}
			continue
		}
		out[fk.Attr] = v
	}

	if verr.Empty() {
		return out, nil
	}
	return out, verr
}

func coerce(f Field, raw any) (any, string) {
	switch f.Type {
	case String, Text, Email, Choice:
		var s string
		switch v := raw.(type) {
		case string:
			s = v
		case json.Number:
			s = v.String()
		default:
			return nil, "Not a valid string."
		}
		if s == "" {
			if f.Required && !f.AllowBlank {
				return nil, constants.MsgFieldBlank
			}
			return s, ""
		}
		if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
			return nil, fmt.Sprintf("Ensure this field has no more than %d characters.", f.MaxLength)
		}
		switch f.Type {
		case Email:
			addr, err := mail.ParseAddress(s)
			if err != nil || addr.Address != s {
				return nil, "Enter a valid email address."
			}
		case Choice:
			for _, c := range f.Choices {
				if c == s {
					return s, ""
				}
			}
			return nil, fmt.Sprintf("%q is not a valid choice.", s)
		}
		return s, ""

	case Integer:
		if n, ok := toInt(raw); ok {
			return n, ""
		}
		return nil, "A valid integer is required."

	case Float:
		if n, ok := toFloat(raw); ok {
			return n, ""
		}
		return nil, "A valid number is required."

	case Boolean:
		if b, ok := toBool(raw); ok {
			return b, ""
		}
		return nil, "Must be a valid boolean."

	case DateTime, Date:
		var t time.Time
		switch v := raw.(type) {
		case time.Time:
			t = v
		case string:
			if v == "" {
				if f.Required {
					return nil, constants.MsgFieldRequired
				}
				return nil, ""
			}
			parsed, err := ParseDateTime(v)
			if err != nil {
				return nil, "Datetime has wrong format."
			}
			t = parsed
		default:
			return nil, "Datetime has wrong format."
		}
		if f.Type == Date {
			t = DateOf(t)
		}
		return t, ""

	case List:
		if v, ok := raw.([]any); ok {
			return v, ""
		}
		return nil, "Expected a list of items."

	case Object:
		if v, ok := raw.(map[string]any); ok {
			return v, ""
		}
		return nil, "Expected an object."
	}
	return raw, ""
}
