// Package sentinel provides the public API for the sentinel document
// sanitizer. It re-exports the core types and functions so that external
// Go modules can use the engine without reaching into internal packages.
package sentinel

import (
	"github.com/lucidshield/sentinel/internal/config"
	"github.com/lucidshield/sentinel/internal/masker"
	"github.com/lucidshield/sentinel/internal/recognizer"
	"github.com/lucidshield/sentinel/internal/restorer"
	"github.com/lucidshield/sentinel/internal/stats"
)

// ---------- Recognition ----------

// Kind is the closed set of entity kinds the engine recognizes.
type Kind = recognizer.Kind

// Category groups kinds for reporting.
type Category = recognizer.Category

// Detection represents a recognized span with byte offsets into the
// scanned text.
type Detection = recognizer.Detection

// Recognizer runs the fixed-order finder pipeline and resolves overlaps.
type Recognizer struct {
	inner *recognizer.Recognizer
}

// NewRecognizer returns a Recognizer with no custom names or patterns.
func NewRecognizer() *Recognizer {
	return &Recognizer{inner: recognizer.New()}
}

// SetCustomNames seeds the per-instance custom-name registry
// (external interface set_custom_names).
func (r *Recognizer) SetCustomNames(names []string) {
	r.inner.SetCustomNames(names)
}

// SetMinConfidence drops spans below the given confidence (0-100).
func (r *Recognizer) SetMinConfidence(min int) {
	r.inner.SetMinConfidence(min)
}

// SetAllowlist compiles regexes whose matching spans are dropped after
// recognition.
func (r *Recognizer) SetAllowlist(patterns []string) error {
	return r.inner.SetAllowlist(patterns)
}

// Extract implements the extract_entities external interface.
func (r *Recognizer) Extract(text string) []Detection {
	return r.inner.Extract(text)
}

// Truncated reports whether the most recent Extract call hit the
// per-text detection cap and dropped trailing candidates.
func (r *Recognizer) Truncated() bool {
	return r.inner.Truncated()
}

// FromConfig builds a Recognizer from a loaded Config, wiring in custom
// names, custom patterns, the allowlist, and the minimum confidence
// threshold.
func FromConfig(cfg *config.Config) (*Recognizer, error) {
	r := NewRecognizer()
	r.SetCustomNames(cfg.Recognizer.CustomNames)
	r.SetMinConfidence(cfg.Recognizer.MinConfidence)
	if err := r.SetAllowlist(cfg.Recognizer.Allowlist); err != nil {
		return nil, err
	}

	patterns := make([]recognizer.CustomPattern, 0, len(cfg.Recognizer.CustomPatterns))
	for _, p := range cfg.Recognizer.CustomPatterns {
		patterns = append(patterns, recognizer.CustomPattern{
			Name: p.Name, Pattern: p.Pattern, Confidence: p.Confidence,
		})
	}
	finders, err := recognizer.CustomPatternFinders(patterns)
	if err != nil {
		return nil, err
	}
	r.inner.SetCustomPatterns(finders)

	return r, nil
}

// ---------- Masking ----------

// MaskResult holds the output of ApplyMasking.
type MaskResult = masker.Result

// Mapping links a placeholder token to the distinct original texts it
// replaced.
type Mapping = masker.Mapping

// ApplyMasking implements the apply_masking external interface.
func ApplyMasking(text string, detections []Detection) MaskResult {
	return masker.ApplyMasking(text, detections)
}

// ---------- Stats ----------

// Stats summarizes a set of detections by category and confidence band.
type Stats = stats.Stats

// ComputeStats implements the compute_stats external interface.
func ComputeStats(detections []Detection) Stats {
	return stats.Compute(detections)
}

// ---------- Restoration ----------

// Restore replaces every placeholder token in text with its recorded
// original value.
func Restore(text string, mappings []Mapping) string {
	return restorer.Restore(text, mappings)
}

// StreamRestorer incrementally restores tokens from streaming chunks.
type StreamRestorer = restorer.StreamRestorer

// NewStreamRestorer returns a StreamRestorer configured with mappings.
func NewStreamRestorer(mappings []Mapping) *StreamRestorer {
	return restorer.NewStreamRestorer(mappings)
}
