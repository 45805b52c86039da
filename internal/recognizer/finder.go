package recognizer

import "regexp"

// Finder produces candidate spans for one entity kind.
type Finder interface {
	Find(text string) []Span
}

// ContextValidator inspects the full text around a match to accept or
// reject it, used for lookback checks (e.g. a phone finder rejecting a
// match that sits inside an IBAN).
type ContextValidator func(fullText string, start, end int) bool

// RegexFinder wraps a single compiled regex for one entity kind.
type RegexFinder struct {
	re           *regexp.Regexp
	kind         Kind
	confidence   int
	validate     func(match string) bool
	validateCtx  ContextValidator
	extractGroup int
}

// RegexFinderOption configures a RegexFinder.
type RegexFinderOption func(*RegexFinder)

// WithValidator adds a post-match validation function over the matched text.
func WithValidator(fn func(string) bool) RegexFinderOption {
	return func(rf *RegexFinder) { rf.validate = fn }
}

// WithContextValidator adds a validation function that sees the full text
// and the match's byte offsets, for lookback/lookahead checks a plain
// match-local validator cannot express.
func WithContextValidator(fn ContextValidator) RegexFinderOption {
	return func(rf *RegexFinder) { rf.validateCtx = fn }
}

// WithExtractGroup selects which submatch group becomes the span text.
// 0 (the default) means the whole match.
func WithExtractGroup(group int) RegexFinderOption {
	return func(rf *RegexFinder) { rf.extractGroup = group }
}

// NewRegexFinder builds a Finder from a compiled regex, a kind, and a base
// confidence in 0-100.
func NewRegexFinder(re *regexp.Regexp, kind Kind, confidence int, opts ...RegexFinderOption) *RegexFinder {
	rf := &RegexFinder{re: re, kind: kind, confidence: confidence}
	for _, opt := range opts {
		opt(rf)
	}
	return rf
}

// Find returns every match in text that survives the finder's validators.
func (rf *RegexFinder) Find(text string) []Span {
	if rf.extractGroup > 0 {
		return rf.findGroups(text)
	}

	locs := rf.re.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		matched := text[start:end]
		if rf.validate != nil && !rf.validate(matched) {
			continue
		}
		if rf.validateCtx != nil && !rf.validateCtx(text, start, end) {
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Kind: rf.kind, Text: matched, Confidence: rf.confidence})
	}
	return spans
}

func (rf *RegexFinder) findGroups(text string) []Span {
	matches := rf.re.FindAllStringSubmatchIndex(text, -1)
	spans := make([]Span, 0, len(matches))
	for _, loc := range matches {
		g := rf.extractGroup
		if g*2+1 >= len(loc) || loc[g*2] < 0 {
			continue
		}
		start, end := loc[g*2], loc[g*2+1]
		matched := text[start:end]
		if rf.validate != nil && !rf.validate(matched) {
			continue
		}
		if rf.validateCtx != nil && !rf.validateCtx(text, start, end) {
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Kind: rf.kind, Text: matched, Confidence: rf.confidence})
	}
	return spans
}

// FuncFinder adapts a plain function to the Finder interface, used for
// finders whose matching logic isn't a single regex (the full-name
// heuristic, the URL finder's trailing-punctuation trim).
type FuncFinder func(text string) []Span

func (f FuncFinder) Find(text string) []Span { return f(text) }
