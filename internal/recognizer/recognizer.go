package recognizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxDetections caps the number of detections a single Extract call returns.
// Text producing more candidate spans than this is truncated rather than
// allowed to grow the detection list unboundedly.
const MaxDetections = 1000

// ContextWindow is the number of bytes captured on either side of a
// detection for the Context field, snapped to UTF-8 codepoint boundaries.
const ContextWindow = 30

// Recognizer runs the fixed-order finder pipeline and resolves overlaps.
// Each Recognizer owns its own custom-name registry and custom patterns,
// so two Recognizers built with different callers never share state --
// this replaces the global mutable pattern registry a naive port of the
// teacher's package-level scanners would otherwise carry forward.
type Recognizer struct {
	names         *NameRegistry
	customFinders []Finder
	minConfidence int
	allowlist     []*regexp.Regexp
	lastTruncated bool
}

// New returns a Recognizer with no custom names or custom patterns.
func New() *Recognizer {
	return &Recognizer{}
}

// SetCustomNames replaces the custom-name registry (external interface
// set_custom_names). Passing nil or an empty slice clears it.
func (r *Recognizer) SetCustomNames(names []string) {
	r.names = NewNameRegistry(names)
}

// SetCustomPatterns replaces the caller-supplied custom regex patterns.
func (r *Recognizer) SetCustomPatterns(finders []Finder) {
	r.customFinders = finders
}

// SetMinConfidence drops spans below the given confidence (0-100) before
// placeholder/ID assignment.
func (r *Recognizer) SetMinConfidence(min int) {
	r.minConfidence = min
}

// SetAllowlist compiles patterns into the per-instance allowlist: a
// detection whose matched text matches any allowlist pattern is dropped
// after overlap resolution (spec.md §3's Allowlist field).
func (r *Recognizer) SetAllowlist(patterns []string) error {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("recognizer: allowlist pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	r.allowlist = compiled
	return nil
}

func (r *Recognizer) allowlisted(text string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Extract runs extract_entities: it scans text with every finder in
// priority order, resolves overlaps (first-finder-wins, longest-on-tie),
// drops spans below the configured minimum confidence, and returns the
// finalized, ID-and-context-annotated detections in reading order.
func (r *Recognizer) Extract(text string) []Detection {
	text = norm.NFC.String(text)

	finders := BuiltinFinders(r.names)
	finders = append(finders, r.customFinders...)

	var all []Span
	for rank, f := range finders {
		for _, s := range f.Find(text) {
			s.finderRank = rank
			all = append(all, s)
		}
	}

	resolved := resolveOverlaps(all)

	r.lastTruncated = false
	detections := make([]Detection, 0, len(resolved))
	for _, s := range resolved {
		if s.Confidence < r.minConfidence {
			continue
		}
		if r.allowlisted(s.Text) {
			continue
		}
		if len(detections) >= MaxDetections {
			r.lastTruncated = true
			break
		}
		detections = append(detections, Detection{
			ID:         newDetectionID(len(detections), s.Start),
			Kind:       s.Kind,
			Category:   categoryOf(s.Kind),
			Start:      s.Start,
			End:        s.End,
			Text:       s.Text,
			Confidence: s.Confidence,
			Context:    contextWindow(text, s.Start, s.End),
			Approved:   true,
		})
	}

	assignPlaceholders(detections)

	return detections
}

// Truncated reports whether the most recent Extract call hit MaxDetections
// and dropped trailing candidates -- the optional out-of-band capacity
// signal from spec.md's error-handling section, kept separate from the
// detection list itself rather than added as a field on every Detection.
func (r *Recognizer) Truncated() bool { return r.lastTruncated }

// placeholderPrefix maps a Kind to the token prefix used in "[PREFIX_N]".
// Most kinds uppercase directly; credit_card, ip, and financial use a
// distinct human-facing prefix.
var placeholderPrefix = map[Kind]string{
	KindPerson:     "PERSON",
	KindEmail:      "EMAIL",
	KindPhone:      "PHONE",
	KindCreditCard: "CARD",
	KindIBAN:       "IBAN",
	KindIP:         "IP_ADDRESS",
	KindURL:        "URL",
	KindDomain:     "DOMAIN",
	KindSaudiID:    "SAUDI_ID",
	KindFinancial:  "AMOUNT",
	KindSSN:        "SSN",
	KindCustom:     "CUSTOM",
}

// assignPlaceholders implements the placeholder allocator (component E):
// every detection in the finalized list gets a placeholder of the form
// "[PREFIX_N]" where N is that detection's 1-based ordinal in the list,
// regardless of kind -- not a per-kind or per-value counter. Two
// detections of the same exact text at different positions get distinct
// placeholders; this is deliberate (spec §9, "Placeholder indexing").
func assignPlaceholders(detections []Detection) {
	for i := range detections {
		prefix, ok := placeholderPrefix[detections[i].Kind]
		if !ok {
			prefix = strings.ToUpper(string(detections[i].Kind))
		}
		detections[i].Placeholder = fmt.Sprintf("[%s_%d]", prefix, i+1)
	}
}

// resolveOverlaps implements the span table (component 4.3): candidates
// are sorted by start ascending, then by finder priority ascending, then
// by length descending, and swept left to right keeping the first
// candidate that does not overlap an already-accepted span. Because the
// sort orders by start first, a span nested entirely inside an
// already-accepted span (e.g. a bare domain inside a matched email) is
// rejected by the same rule without any kind-specific containment check.
func resolveOverlaps(spans []Span) []Span {
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		if sorted[i].finderRank != sorted[j].finderRank {
			return sorted[i].finderRank < sorted[j].finderRank
		}
		return (sorted[i].End - sorted[i].Start) > (sorted[j].End - sorted[j].Start)
	})

	accepted := make([]Span, 0, len(sorted))
	lastEnd := -1
	for _, s := range sorted {
		if s.Start < lastEnd {
			continue
		}
		accepted = append(accepted, s)
		lastEnd = s.End
	}
	return accepted
}

// contextWindow extracts up to ContextWindow bytes before and after
// [start,end), snapped inward to the nearest UTF-8 codepoint boundary so
// the window never splits a multi-byte rune.
func contextWindow(text string, start, end int) string {
	from := start - ContextWindow
	if from < 0 {
		from = 0
	}
	for from < start && isUTF8Continuation(text[from]) {
		from++
	}

	to := end + ContextWindow
	if to > len(text) {
		to = len(text)
	}
	for to > end && to < len(text) && isUTF8Continuation(text[to]) {
		to--
	}

	return text[from:to]
}

func isUTF8Continuation(b byte) bool {
	return b&0xC0 == 0x80
}
