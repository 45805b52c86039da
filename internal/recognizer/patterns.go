package recognizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lucidshield/sentinel/internal/checksum"
)

// BuiltinFinders returns the fixed-order finder pipeline for the twelve
// core entity families. The order is load-bearing: it is the priority used
// to resolve overlapping spans in the span table (first-finder-wins).
//
//	custom_names -> full_names -> financial -> credit_card -> iban -> ip ->
//	phone -> email -> url -> domain -> saudi_id -> ssn
//
// Callers that need custom names wired in pass a *NameRegistry built from
// the caller's list; a nil/empty registry contributes no spans.
func BuiltinFinders(names *NameRegistry) []Finder {
	finders := make([]Finder, 0, 16)
	if names != nil {
		finders = append(finders, names)
	}
	finders = append(finders, fullNameFinders()...)
	finders = append(finders, financialFinders()...)
	finders = append(finders, creditCardFinders()...)
	finders = append(finders, ibanFinders()...)
	finders = append(finders, ipFinders()...)
	finders = append(finders, phoneFinders()...)
	finders = append(finders, emailFinders()...)
	finders = append(finders, urlFinders()...)
	finders = append(finders, domainFinders()...)
	finders = append(finders, saudiIDFinders()...)
	finders = append(finders, ssnFinders()...)
	return finders
}

// --- full_names ---

// nameComponent matches a capitalized word: uppercase letter followed by
// one or more lowercase letters, with optional diacritics, allowing an
// internal hyphen so compound surnames like "Al-Rashid" match as one
// component instead of splitting on the hyphen.
const nameComponent = `[A-ZÀ-Þ][a-zà-ÿ]+(?:-[A-ZÀ-Þ][a-zà-ÿ]+)*`

var fullNameRe = regexp.MustCompile(`\b` + nameComponent + `(?:[ \t]+` + nameComponent + `){1,2}\b`)

// fullNameStopwords lists capitalized words that commonly open a sentence
// or salutation and would otherwise read as a plausible two-word name. This
// is a practical addition on top of fullNameFalsePositiveWords below: it
// covers sentence-position false positives ("Contact Yasser Al-Rashid"),
// not the generic-noun false positives the spec's Glossary enumerates.
var fullNameStopwords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"Dear": true, "Regards": true, "Sincerely": true, "Thank": true,
	"Please": true, "Best": true, "Attached": true, "Enclosed": true,
	"Note": true, "Subject": true, "From": true, "To": true, "Date": true,
	"Re": true, "Hello": true, "Hi": true, "Good": true, "Kind": true,
	"Many": true, "With": true, "As": true, "If": true, "When": true,
	"Contact": true,
}

// fullNameFalsePositiveWords is spec.md's closed Glossary list of common
// nouns that read as a plausible name component but are never personal
// names ("Acme Corporation", "XYZ Company"). A match containing any of
// these, in any position, is rejected outright rather than trimmed.
var fullNameFalsePositiveWords = map[string]bool{
	"company": true, "corporation": true, "provider": true, "owner": true,
	"customer": true, "client": true, "employee": true, "employer": true,
	"manager": true, "director": true, "officer": true, "member": true,
	"partner": true, "vendor": true, "supplier": true, "contractor": true,
	"tenant": true, "landlord": true, "buyer": true, "seller": true,
	"lender": true, "borrower": true, "licensee": true, "licensor": true,
	"assignee": true, "assignor": true, "beneficiary": true, "trustee": true,
	"agent": true, "principal": true, "party": true, "parties": true,
	"entity": true, "organization": true, "business": true, "firm": true,
	"service": true, "services": true, "product": true, "products": true,
	"software": true, "system": true, "user": true, "account": true,
	"holder": true, "applicant": true, "recipient": true, "donor": true,
	"trade": true, "mark": true, "trademark": true, "copyright": true,
	"patent": true,
}

func isNameFalsePositive(word string) bool {
	return fullNameStopwords[word] || fullNameFalsePositiveWords[strings.ToLower(word)]
}

var nameComponentRe = regexp.MustCompile(nameComponent)

func fullNameFinders() []Finder {
	notPossessive := func(fullText string, _, end int) bool {
		rest := fullText[end:]
		return !strings.HasPrefix(rest, "'s") && !strings.HasPrefix(rest, "' s")
	}

	// fullNameRe is greedy and knows nothing of stopwords, so a
	// sentence-opening word ("Contact Yasser Al-Rashid") gets swallowed into
	// the match. Rather than reject the whole candidate, trim stopword
	// components from the front and re-anchor the span on what's left,
	// the same shrink-from-the-edge approach trimTrailingPunct uses for
	// URLs.
	finder := FuncFinder(func(text string) []Span {
		locs := fullNameRe.FindAllStringIndex(text, -1)
		spans := make([]Span, 0, len(locs))
		for _, loc := range locs {
			mStart, mEnd := loc[0], loc[1]
			matched := text[mStart:mEnd]
			words := nameComponentRe.FindAllStringIndex(matched, -1)

			i := 0
			for i < len(words) && fullNameStopwords[matched[words[i][0]:words[i][1]]] {
				i++
			}
			words = words[i:]
			if len(words) < 2 {
				continue
			}
			ok := true
			for _, w := range words {
				if isNameFalsePositive(matched[w[0]:w[1]]) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}

			start := mStart + words[0][0]
			end := mStart + words[len(words)-1][1]
			candidate := text[start:end]
			if len(candidate) < 4 || !notPossessive(text, start, end) {
				continue
			}
			spans = append(spans, Span{Start: start, End: end, Kind: KindPerson, Text: candidate, Confidence: 85})
		}
		return spans
	})

	return []Finder{finder}
}

// --- financial ---

// financialFinders requires an explicit currency indicator -- a symbol, an
// ISO/short code, or a trailing word form -- before treating a number as an
// amount; a bare number never matches (spec.md §4.2.3).
func financialFinders() []Finder {
	magnitude := `(?:\s?(?:[KMB]|thousand|million|billion))?`
	intPart := `(?:\d{1,3}(?:,\d{3})+|\d+)`
	chfIntPart := `(?:\d{1,3}(?:['\x{2019}]\d{3})+|\d+)`
	generic := intPart + `(?:\.\d{1,2})?` + magnitude
	euroStyle := `\d{1,3}(?:\.\d{3})*,\d{2}` + magnitude
	chfStyle := chfIntPart + `(?:\.\d{2})?` + magnitude

	isoCodes := `USD|EUR|GBP|SAR|SR|AED|JPY|INR|CHF`
	wordForms := `dollars|euros|pounds|riyals|dirhams|yen|rupees`

	patterns := []string{
		`€\s?` + euroStyle,                 // symbol-prefixed, European grouping
		euroStyle + `\s?€`,                 // symbol-suffixed, European grouping
		`[$£¥₹]\s?` + generic,              // symbol-prefixed, comma grouping
		`CHF\s?` + chfStyle,                // Swiss apostrophe grouping
		`(?:` + isoCodes + `)\s?` + generic, // ISO/short code prefix
		generic + `\s?(?:` + isoCodes + `)`, // ISO/short code suffix
		generic + `\s(?:` + wordForms + `)`, // trailing word form
	}

	finders := make([]Finder, 0, len(patterns))
	for _, p := range patterns {
		finders = append(finders, NewRegexFinder(regexp.MustCompile(p), KindFinancial, 95))
	}
	return finders
}

// --- credit_card ---

func creditCardFinders() []Finder {
	visa := `\b4\d{3}[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`
	mc := `\b(?:5[1-5]\d{2}|2[2-7]\d{2})[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`
	amex := `\b3[47]\d{2}[\s\-]?\d{6}[\s\-]?\d{5}\b`
	discover := `\b(?:6011|65\d{2}|64[4-9]\d)[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`

	return []Finder{
		NewRegexFinder(regexp.MustCompile(visa), KindCreditCard, 95, WithValidator(checksum.Luhn)),
		NewRegexFinder(regexp.MustCompile(mc), KindCreditCard, 95, WithValidator(checksum.Luhn)),
		NewRegexFinder(regexp.MustCompile(amex), KindCreditCard, 95, WithValidator(checksum.Luhn)),
		NewRegexFinder(regexp.MustCompile(discover), KindCreditCard, 95, WithValidator(checksum.Luhn)),
	}
}

// --- iban ---

func ibanFinders() []Finder {
	pattern := `\b[A-Z]{2}\d{2}[\s\-]?[\dA-Z]{4}[\s\-]?[\dA-Z]{4}(?:[\s\-]?[\dA-Z]{4}){1,7}(?:[\s\-]?[\dA-Z]{1,4})?\b`
	return []Finder{
		NewRegexFinder(regexp.MustCompile(pattern), KindIBAN, 95, WithValidator(checksum.IBAN)),
	}
}

// --- ip ---

// ipv4Re accepts octets with leading zeros; validateIPv4 rejects them.
var ipv4Re = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\b`)

var ipv6Re = regexp.MustCompile(`(?:` +
	`(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}` +
	`|(?:[0-9a-fA-F]{1,4}:){1,7}:` +
	`|(?:[0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}` +
	`|::1` +
	`|::` +
	`)`)

func validateIPv4(s string) bool {
	for _, p := range strings.Split(s, ".") {
		if len(p) > 1 && p[0] == '0' {
			return false
		}
	}
	return true
}

// notVersionLiteral rejects an IP-shaped match directly preceded by a
// letter, the common shape of a software version string like "v1.2.3.4".
func notVersionLiteral(fullText string, start, _ int) bool {
	if start == 0 {
		return true
	}
	r := rune(fullText[start-1])
	return !unicode.IsLetter(r)
}

func ipFinders() []Finder {
	return []Finder{
		NewRegexFinder(ipv4Re, KindIP, 95, WithValidator(validateIPv4), WithContextValidator(notVersionLiteral)),
		NewRegexFinder(ipv6Re, KindIP, 95, WithContextValidator(notVersionLiteral)),
	}
}

// --- phone ---

// ibanPrefixRe matches the leading portion of an IBAN that may appear just
// before a phone-like digit run, so the phone finder can reject a match
// that actually sits inside an IBAN.
var ibanPrefixRe = regexp.MustCompile(`[A-Z]{2}\d{2}(?:[\s\-][\dA-Z]{4})*[\s\-]?[\dA-Z]{0,4}$`)

func phoneNotInIBAN(fullText string, start, _ int) bool {
	lookback := 40
	from := start - lookback
	if from < 0 {
		from = 0
	}
	return !ibanPrefixRe.MatchString(fullText[from:start])
}

// phoneFinders is a union of country-specific and generic patterns (spec.md
// §4.2.7); every sub-pattern shares the family's single confidence value
// rather than carrying its own.
func phoneFinders() []Finder {
	intl := `\+(?:1|20|27|30|31|32|33|34|39|40|41|43|44|45|46|47|48|49|51|52|55|61|62|63|64|65|66|81|82|84|86|90|91|92|93|94|95|962|963|964|965|966|971|972|974)[ \t]?[\d][\d \t.\-]{6,14}\d`
	generic00 := `00\d{1,3}[ \t.\-]?\d[\d \t.\-]{6,14}\d`
	usParen := `\(\d{3}\)[ \t]?\d{3}[\-.]?\d{4}`
	usDashed := `\b\d{3}[\-.]\d{3}[\-.]\d{4}\b`
	tollFree := `\b1[\-\s]?8(?:00|33|44|55|66|77|88)[\-\s]?\d{3}[\-\s]?\d{4}\b`
	ukLandline := `\b020[ \t]?\d{4}[ \t]?\d{4}\b`
	ukMobile := `\b07\d{3}[ \t]?\d{6}\b`
	saudiDomestic := `\b05\d{8}\b`
	withExtension := `(?:\(\d{3}\)[ \t]?\d{3}[\-.]?\d{4}|\b\d{3}[\-.]\d{3}[\-.]\d{4})[ \t]?(?:ext\.?|x)[ \t]?\d{2,6}\b`

	return []Finder{
		NewRegexFinder(regexp.MustCompile(intl), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(generic00), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(withExtension), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(usParen), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(usDashed), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(tollFree), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(ukLandline), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(ukMobile), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
		NewRegexFinder(regexp.MustCompile(saudiDomestic), KindPhone, 85, WithContextValidator(phoneNotInIBAN)),
	}
}

// --- email ---

func emailFinders() []Finder {
	pattern := `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`
	return []Finder{
		NewRegexFinder(regexp.MustCompile(pattern), KindEmail, 95),
	}
}

// --- url ---

var urlRe = regexp.MustCompile(`(?:https?|ftp)://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

// trimTrailingPunct removes sentence punctuation a greedy URL match would
// otherwise swallow, e.g. the period in "see https://x.com." and a
// trailing closing paren left unbalanced by surrounding prose.
func trimTrailingPunct(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		switch last {
		case '.', ',', ';', ':', '!', '?':
			s = s[:len(s)-1]
			continue
		case ')':
			if strings.Count(s, "(") < strings.Count(s, ")") {
				s = s[:len(s)-1]
				continue
			}
		}
		break
	}
	return s
}

func urlFinders() []Finder {
	finder := FuncFinder(func(text string) []Span {
		locs := urlRe.FindAllStringIndex(text, -1)
		spans := make([]Span, 0, len(locs))
		for _, loc := range locs {
			matched := text[loc[0]:loc[1]]
			trimmed := trimTrailingPunct(matched)
			if trimmed == "" {
				continue
			}
			spans = append(spans, Span{
				Start: loc[0], End: loc[0] + len(trimmed),
				Kind: KindURL, Text: trimmed, Confidence: 95,
			})
		}
		return spans
	})
	return []Finder{finder}
}

// --- domain ---

// domainTLDs is the closed list of top-level domains the bare-domain
// finder recognizes, to keep it from firing on every "word.word" token.
var domainTLDs = `com|net|org|io|co|dev|app|ai|edu|gov|info|biz|me|sa|uk|de|fr|eu`

var domainRe = regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9\-]*(?:\.[a-zA-Z0-9][a-zA-Z0-9\-]*)*\.(?:` + domainTLDs + `)\b`)

func notEmailOrURLFragment(fullText string, start, _ int) bool {
	if start > 0 && fullText[start-1] == '@' {
		return false
	}
	if start >= 3 && fullText[start-3:start] == "://" {
		return false
	}
	return true
}

func domainFinders() []Finder {
	return []Finder{
		NewRegexFinder(domainRe, KindDomain, 90, WithContextValidator(notEmailOrURLFragment)),
	}
}

// --- saudi_id ---

func notPrefixedByPlusOrDigit(fullText string, start, _ int) bool {
	if start == 0 {
		return true
	}
	r := rune(fullText[start-1])
	return r != '+' && !unicode.IsDigit(r)
}

func saudiIDFinders() []Finder {
	pattern := `\b[12]\d{9}\b`
	return []Finder{
		NewRegexFinder(regexp.MustCompile(pattern), KindSaudiID, 90, WithContextValidator(notPrefixedByPlusOrDigit)),
	}
}

// --- ssn ---

func ssnFinders() []Finder {
	pattern := `\b\d{3}-\d{2}-\d{4}\b`
	validate := func(s string) bool {
		area := s[:3]
		return area != "000" && area != "666" && area[0] != '9'
	}
	return []Finder{
		NewRegexFinder(regexp.MustCompile(pattern), KindSSN, 90, WithValidator(validate)),
	}
}

// --- custom (config-supplied patterns, a supplemental finder family) ---

// CustomPatternFinders compiles caller-supplied regex patterns into Finders
// emitting KindCustom spans. Grounded on the teacher's
// config.ScannerConfig.CustomPatterns feature.
func CustomPatternFinders(patterns []CustomPattern) ([]Finder, error) {
	finders := make([]Finder, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, err
		}
		confidence := p.Confidence
		if confidence == 0 {
			confidence = 70
		}
		finders = append(finders, NewRegexFinder(re, KindCustom, confidence))
	}
	return finders, nil
}

// CustomPattern is a caller-supplied regex pattern loaded from config.
type CustomPattern struct {
	Name       string
	Pattern    string
	Confidence int
}
