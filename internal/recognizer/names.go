package recognizer

import (
	"regexp"
	"strings"
)

// NameRegistry holds the per-Recognizer set of custom names supplied by the
// caller (component 4.7). It is deliberately an instance field rather than
// package-level mutable state: two Recognizers built from different custom
// name lists must never interfere with each other.
type NameRegistry struct {
	re *regexp.Regexp
}

// NewNameRegistry compiles names into a single case-insensitive,
// ASCII-word-boundary alternation. Each name is regexp-escaped so that
// punctuation in a supplied name (e.g. "O'Brien") is matched literally.
func NewNameRegistry(names []string) *NameRegistry {
	if len(names) == 0 {
		return &NameRegistry{}
	}

	parts := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(n))
	}
	if len(parts) == 0 {
		return &NameRegistry{}
	}

	pattern := `(?i)\b(?:` + strings.Join(parts, "|") + `)\b`
	return &NameRegistry{re: regexp.MustCompile(pattern)}
}

// Find implements Finder. It returns one span per occurrence of a
// registered name, preserving the original casing found in text.
func (n *NameRegistry) Find(text string) []Span {
	if n == nil || n.re == nil {
		return nil
	}
	locs := n.re.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{
			Start:      loc[0],
			End:        loc[1],
			Kind:       KindPerson,
			Text:       text[loc[0]:loc[1]],
			Confidence: 100,
		})
	}
	return spans
}
