// Package restorer reverses masking given a mapping table (spec component
// M, an informational convenience: a placeholder that stood in for more
// than one distinct original cannot be losslessly restored, so the first
// recorded original is used).
package restorer

import (
	"sort"
	"strings"

	"github.com/lucidshield/sentinel/internal/masker"
)

// Restore replaces every placeholder token in text with its first
// recorded original value. Tokens are replaced longest-first so
// "[PERSON_10]" is never partially clobbered by a "[PERSON_1]" replacement.
func Restore(text string, mappings []masker.Mapping) string {
	if len(mappings) == 0 {
		return text
	}

	sorted := make([]masker.Mapping, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Placeholder) > len(sorted[j].Placeholder)
	})

	for _, m := range sorted {
		if len(m.Originals) == 0 {
			continue
		}
		text = strings.ReplaceAll(text, m.Placeholder, m.Originals[0])
	}
	return text
}

// StreamRestorer incrementally restores tokens from streaming chunks,
// buffering an incomplete trailing token (an opening '[' without a
// matching ']') across Process calls.
type StreamRestorer struct {
	mappings []masker.Mapping
	buffer   string
}

// NewStreamRestorer returns a StreamRestorer configured with mappings.
func NewStreamRestorer(mappings []masker.Mapping) *StreamRestorer {
	sorted := make([]masker.Mapping, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Placeholder) > len(sorted[j].Placeholder)
	})
	return &StreamRestorer{mappings: sorted}
}

// Process accepts the next chunk of streamed text, returning any text
// that is safe to emit immediately.
func (sr *StreamRestorer) Process(chunk string) string {
	sr.buffer += chunk

	lastOpen := strings.LastIndex(sr.buffer, "[")
	if lastOpen != -1 && !strings.Contains(sr.buffer[lastOpen:], "]") {
		safe := sr.buffer[:lastOpen]
		sr.buffer = sr.buffer[lastOpen:]
		return sr.replace(safe)
	}

	out := sr.replace(sr.buffer)
	sr.buffer = ""
	return out
}

// Flush returns any remaining buffered text after applying replacements.
func (sr *StreamRestorer) Flush() string {
	out := sr.replace(sr.buffer)
	sr.buffer = ""
	return out
}

func (sr *StreamRestorer) replace(text string) string {
	for _, m := range sr.mappings {
		if len(m.Originals) == 0 {
			continue
		}
		text = strings.ReplaceAll(text, m.Placeholder, m.Originals[0])
	}
	return text
}
