// Package stats implements the stats aggregator (spec component 4.8 / H):
// summarizing a detection list by category and confidence band.
package stats

import "github.com/lucidshield/sentinel/internal/recognizer"

// Stats summarizes a set of detections.
type Stats struct {
	TotalDetections int            `json:"total_detections"`
	ByCategory      map[string]int `json:"by_category"`
	ByConfidence    map[string]int `json:"by_confidence"`
}

// confidenceBand buckets a 0-100 confidence score into high/medium/low.
func confidenceBand(c int) string {
	switch {
	case c >= 80:
		return "high"
	case c >= 50:
		return "medium"
	default:
		return "low"
	}
}

// Compute implements the compute_stats external interface.
func Compute(detections []recognizer.Detection) Stats {
	s := Stats{
		ByCategory:   make(map[string]int),
		ByConfidence: make(map[string]int),
	}
	for _, d := range detections {
		s.TotalDetections++
		s.ByCategory[string(d.Category)]++
		s.ByConfidence[confidenceBand(d.Confidence)]++
	}
	return s
}
