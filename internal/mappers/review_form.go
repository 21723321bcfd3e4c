package mappers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/transport"
)

const elementNameLimit = 200

// elementKinds maps source question types onto host form element kinds.
var elementKinds = map[string]string{
	"text":       "text",
	"string":     "text",
	"textarea":   "textarea",
	"long_text":  "textarea",
	"checkbox":   "check",
	"check":      "check",
	"checkboxes": "select",
	"radio":      "select",
	"radios":     "select",
	"select":     "select",
	"dropdown":   "select",
	"email":      "email",
	"date":       "date",
	"upload":     "upload",
}

// ReviewForm maps a journal's review form. Inactive forms are stored as
// deleted.
func ReviewForm() *transport.Definition[gormModels.ReviewForm] {
	return &transport.Definition[gormModels.ReviewForm]{
		Name: "ReviewForm",
		Fields: []transport.Field{
			{Name: "name", Type: transport.String, Required: true, MaxLength: 200},
			{Name: "slug", Type: transport.String, MaxLength: 200},
			{Name: "intro", Type: transport.Text},
			{Name: "thanks", Type: transport.Text},
			{Name: "deleted", Type: transport.Boolean},
		},
		Defaults: []transport.Default{
			{Field: "slug", Func: func(_ *transport.Context, data transport.Payload) (any, error) {
				return slugify(data.String("name")), nil
			}},
			{Field: "deleted", Value: false},
		},
		HTMLExempt: []string{"intro", "thanks"},
		Parents:    journalParent,

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			if active, ok := data.Pop("active"); ok && active != nil {
				data["deleted"] = !(transport.Payload{"a": active}).Bool("a")
			}
			return nil
		},
	}
}

// ReviewFormElement maps one question of a review form. Names longer than
// the host allows are cut and the remainder is kept in the help text.
func ReviewFormElement() *transport.Definition[gormModels.ReviewFormElement] {
	return &transport.Definition[gormModels.ReviewFormElement]{
		Name: "ReviewFormElement",
		Fields: []transport.Field{
			{Name: "name", Type: transport.String, Required: true, MaxLength: elementNameLimit},
			{Name: "kind", Type: transport.Choice, Choices: distinctKinds()},
			{Name: "choices", Type: transport.String},
			{Name: "required", Type: transport.Boolean},
			{Name: "sequence", Attr: "order", Type: transport.Integer},
			{Name: "width", Type: transport.String},
			{Name: "help_text", Type: transport.Text},
		},
		Defaults: []transport.Default{
			{Field: "kind", Value: "text"},
			{Field: "sequence", Value: 0},
			{Field: "width", Value: "large-12 columns"},
		},
		Parents: map[string]nested.Parent{
			"review_form_id": {Column: "form_id", Target: "ReviewForm"},
		},
		ParentKeys: []string{"review_form_id"},

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			splitElementName(data)

			if kind, ok := data["kind"].(string); ok {
				if mapped, known := elementKinds[strings.ToLower(strings.TrimSpace(kind))]; known {
					data["kind"] = mapped
				} else {
					data["kind"] = "text"
				}
			}

			if list, ok := data["choices"].([]any); ok {
				data["choices"] = strings.Join(transport.Payload{"c": list}.Strings("c"), "|")
			}
			return nil
		},
	}
}

// splitElementName caps name and moves the overflow in front of help_text.
func splitElementName(data transport.Payload) {
	name, ok := data["name"].(string)
	if !ok || utf8.RuneCountInString(name) <= elementNameLimit {
		return
	}

	runes := []rune(name)
	head := string(runes[:elementNameLimit])
	if cut := strings.LastIndex(head, " "); cut > elementNameLimit/2 {
		head = head[:cut]
	}
	overflow := strings.TrimSpace(strings.TrimPrefix(name, head))

	data["name"] = strings.TrimSpace(head)
	if help := data.String("help_text"); help != "" {
		overflow = overflow + "\n\n" + help
	}
	data["help_text"] = overflow
}

func distinctKinds() []string {
	seen := map[string]bool{}
	var out []string
	for _, kind := range elementKinds {
		if !seen[kind] {
			seen[kind] = true
			out = append(out, kind)
		}
	}
	return out
}

// ReviewFormAnswer maps a reviewer's answer to one form element. The
// element's name and kind are frozen onto the answer.
func ReviewFormAnswer() *transport.Definition[gormModels.ReviewFormAnswer] {
	return &transport.Definition[gormModels.ReviewFormAnswer]{
		Name: "ReviewFormAnswer",
		Fields: []transport.Field{
			{Name: "answer", Type: transport.Text},
			{Name: "author_can_see", Type: transport.Boolean},
			{Name: "element_name", Attr: "frozen_element_name", Type: transport.String},
			{Name: "element_kind", Attr: "frozen_element_kind", Type: transport.String},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "element", Attr: "original_element_id", Target: "ReviewFormElement"},
		},
		Defaults: []transport.Default{{Field: "author_can_see", Value: false}},
		Parents: map[string]nested.Parent{
			"assignment_id": {Column: "assignment_id", Target: "ReviewAssignment"},
		},
		ParentKeys: []string{"assignment_id"},

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			switch v := data["answer"].(type) {
			case nil, string:
			case []any:
				data["answer"] = strings.Join(transport.Payload{"a": v}.Strings("a"), ", ")
			default:
				data["answer"] = data.String("answer")
			}
			return nil
		},

		PreProcess: func(c *transport.Context, data transport.Payload) error {
			elementID := data.Uint("original_element_id")
			if elementID == nil {
				return nil
			}
			var element gormModels.ReviewFormElement
			if err := c.Tx().First(&element, *elementID).Error; err != nil {
				return fmt.Errorf("failed to load form element %d: %w", *elementID, err)
			}
			data.Default("frozen_element_name", element.Name)
			data.Default("frozen_element_kind", element.Kind)
			return nil
		},
	}
}
