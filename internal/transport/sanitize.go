package transport

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	blockElements = map[atom.Atom]bool{
		atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
		atom.Ul: true, atom.Ol: true, atom.Tr: true, atom.Table: true,
		atom.Blockquote: true, atom.Pre: true, atom.Hr: true,
		atom.H1: true, atom.H2: true, atom.H3: true,
		atom.H4: true, atom.H5: true, atom.H6: true,
	}
	skippedElements = map[atom.Atom]bool{atom.Script: true, atom.Style: true}

	extraNewlines = regexp.MustCompile(`\n{3,}`)
	lineSpaces    = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// StripHTML returns the text content of s. Paragraph and line breaks are
// kept as newlines; entities are decoded.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skipping := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return s
			}
			out := lineSpaces.ReplaceAllString(b.String(), "\n")
			out = extraNewlines.ReplaceAllString(out, "\n\n")
			return strings.TrimSpace(out)

		case html.TextToken:
			if skipping == 0 {
				b.Write(z.Text())
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skippedElements[a] && tt == html.StartTagToken {
				skipping++
			}
			if blockElements[a] {
				newline(&b)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skippedElements[a] && skipping > 0 {
				skipping--
			}
			if blockElements[a] && a != atom.Br {
				newline(&b)
			}
		}
	}
}

func newline(b *strings.Builder) {
	if s := b.String(); s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
}

// stripPayload strips every string value whose key is not exempt.
func stripPayload(p Payload, exempt []string) {
	skip := make(map[string]bool, len(exempt))
	for _, k := range exempt {
		skip[k] = true
	}
	for k, v := range p {
		if s, ok := v.(string); ok && !skip[k] {
			p[k] = StripHTML(s)
		}
	}
}
