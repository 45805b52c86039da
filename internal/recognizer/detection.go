// Package recognizer implements the pattern registry, span table, and
// recognition pipeline that finds PII and sensitive spans in text.
package recognizer

import "fmt"

// Kind is the closed set of entity kinds the engine recognizes.
type Kind string

const (
	KindPerson     Kind = "person"
	KindEmail      Kind = "email"
	KindPhone      Kind = "phone"
	KindCreditCard Kind = "credit_card"
	KindIBAN       Kind = "iban"
	KindIP         Kind = "ip"
	KindURL        Kind = "url"
	KindDomain     Kind = "domain"
	KindSaudiID    Kind = "saudi_id"
	KindFinancial  Kind = "financial"
	KindSSN        Kind = "ssn"
	KindCustom     Kind = "custom"
)

// Category groups kinds for reporting (component H, stats by_category).
type Category string

const (
	CategoryPII       Category = "pii"
	CategoryFinancial Category = "financial"
	CategoryTechnical Category = "technical"
	CategoryCompany   Category = "company"
	CategoryCustom    Category = "custom"
)

// categoryOf maps a Kind to its reporting Category.
func categoryOf(k Kind) Category {
	switch k {
	case KindPerson, KindPhone, KindSaudiID, KindSSN:
		return CategoryPII
	case KindCreditCard, KindIBAN, KindFinancial:
		return CategoryFinancial
	case KindIP, KindURL, KindDomain:
		return CategoryTechnical
	case KindCustom:
		return CategoryCustom
	default:
		return CategoryPII
	}
}

// Span is a candidate match produced by a single finder, before overlap
// resolution has run. Offsets are byte offsets into the scanned text.
type Span struct {
	Start      int
	End        int
	Kind       Kind
	Text       string
	Confidence int // 0-100
	finderRank int // priority of the finder that produced this span, lower wins
}

// Detection is a finalized, non-overlapping span with the metadata the
// external interfaces (extract_entities, apply_masking, compute_stats)
// operate on.
type Detection struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Category    Category `json:"category"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Text        string   `json:"text"`
	Confidence  int      `json:"confidence"`
	Context     string   `json:"context"`
	Placeholder string   `json:"placeholder"`
	Approved    bool     `json:"approved"`
}

// newDetectionID builds the id format det-<index>-<start>.
func newDetectionID(index, start int) string {
	return fmt.Sprintf("det-%d-%d", index, start)
}
