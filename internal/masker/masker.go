package masker

import (
	"sort"

	"github.com/lucidshield/sentinel/internal/recognizer"
)

// Result holds the output of ApplyMasking.
type Result struct {
	OriginalText string                 `json:"original_text"`
	RedactedText string                 `json:"redacted_text"`
	Detections   []recognizer.Detection `json:"detections"`
	Mappings     []Mapping              `json:"mappings"`
}

// ApplyMasking implements the masking rewriter (component F / the
// apply_masking external interface):
//  1. Filter to approved detections with valid positions.
//  2. Sort descending by start.
//  3. Splice each detection's placeholder into the text in that order, so
//     earlier offsets stay valid as later edits are applied.
//  4. Build the mapping from placeholder to the ordered, deduplicated list
//     of original texts it replaced. Under the placeholder allocator
//     (component E) two detections only share a placeholder if the caller
//     supplied external detections with colliding kind+ordinal; that rare
//     case is where merging actually does anything.
//
// Placeholders themselves are assigned earlier, by the recognizer, as part
// of extract_entities -- not here. ApplyMasking only consumes whatever
// Placeholder is already set on each detection.
func ApplyMasking(text string, detections []recognizer.Detection) Result {
	approved := make([]recognizer.Detection, 0, len(detections))
	for _, d := range detections {
		if d.Approved && validSpan(text, d) {
			approved = append(approved, d)
		}
	}

	if len(approved) == 0 {
		return Result{OriginalText: text, RedactedText: text, Detections: detections}
	}

	sort.Slice(approved, func(i, j int) bool { return approved[i].Start < approved[j].Start })
	mappings := buildMappings(approved)

	descending := make([]recognizer.Detection, len(approved))
	copy(descending, approved)
	sort.Slice(descending, func(i, j int) bool { return descending[i].Start > descending[j].Start })

	buf := []byte(text)
	for _, d := range descending {
		tokenBytes := []byte(d.Placeholder)
		newBuf := make([]byte, 0, len(buf)-d.End+d.Start+len(tokenBytes))
		newBuf = append(newBuf, buf[:d.Start]...)
		newBuf = append(newBuf, tokenBytes...)
		newBuf = append(newBuf, buf[d.End:]...)
		buf = newBuf
	}

	return Result{
		OriginalText: text,
		RedactedText: string(buf),
		Detections:   detections,
		Mappings:     mappings,
	}
}

func validSpan(text string, d recognizer.Detection) bool {
	if d.Start < 0 || d.End <= d.Start || d.End > len(text) {
		return false
	}
	return text[d.Start:d.End] == d.Text
}

// buildMappings groups approved detections by placeholder, preserving
// first-seen order of both placeholders and the distinct original texts
// within each. In the common case every detection has a unique
// placeholder (see component E) and each mapping entry has exactly one
// original.
func buildMappings(approved []recognizer.Detection) []Mapping {
	order := make([]string, 0, len(approved))
	byPlaceholder := make(map[string]*Mapping, len(approved))

	for _, d := range approved {
		m, ok := byPlaceholder[d.Placeholder]
		if !ok {
			order = append(order, d.Placeholder)
			m = &Mapping{Placeholder: d.Placeholder, Kind: string(d.Kind)}
			byPlaceholder[d.Placeholder] = m
		}
		if !containsString(m.Originals, d.Text) {
			m.Originals = append(m.Originals, d.Text)
		}
	}

	mappings := make([]Mapping, 0, len(order))
	for _, p := range order {
		mappings = append(mappings, *byPlaceholder[p])
	}
	return mappings
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
