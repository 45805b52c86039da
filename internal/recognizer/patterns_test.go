package recognizer

import "testing"

func TestFinancial_TruePositives(t *testing.T) {
	cases := []struct {
		name, input, want string
	}{
		{"euro prefix", "Total: €1.234,56 due.", "€1.234,56"},
		{"euro suffix", "Total: 1.234,56€ due.", "1.234,56€"},
		{"usd", "Charged $1,234.56 today.", "$1,234.56"},
		{"gbp", "Refund of £99.00 issued.", "£99.00"},
		{"chf", "Invoice CHF 1'234.50 attached.", "CHF 1'234.50"},
		{"yen symbol", "Priced at ¥5000 even.", "¥5000"},
		{"rupee symbol", "Billed ₹750 for the service.", "₹750"},
		{"iso code prefix", "Wire SAR 2,500 to the account.", "SAR 2,500"},
		{"iso code suffix", "Quoted 1,200 AED for delivery.", "1,200 AED"},
		{"short code", "Pay SR 300 at the counter.", "SR 300"},
		{"word form dollars", "Settled for 1,500 dollars.", "1,500 dollars"},
		{"word form riyals", "Costs 200 riyals per unit.", "200 riyals"},
		{"magnitude suffix", "Raised $2.5 million in funding.", "$2.5 million"},
		{"magnitude letter", "Valued at $400K by the assessor.", "$400K"},
	}
	r := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dets := r.Extract(tc.input)
			if d := findKind(t, dets, KindFinancial); d == nil || d.Text != tc.want {
				t.Errorf("expected FINANCIAL %q, got %+v", tc.want, d)
			}
		})
	}
}

func TestFinancial_TrueNegatives(t *testing.T) {
	cases := []string{
		"The meeting is at 1.234 pm.",
		"Room 1234 is reserved.",
	}
	r := New()
	for _, in := range cases {
		dets := r.Extract(in)
		if d := findKind(t, dets, KindFinancial); d != nil {
			t.Errorf("unexpected FINANCIAL match in %q: %+v", in, d)
		}
	}
}

func TestCreditCard_DiscoverTruePositives(t *testing.T) {
	cases := []struct{ name, want string }{
		{"6011 prefix", "6011000000000004"},
		{"65 prefix", "6500000000000002"},
		{"644-649 prefix", "6440000000000005"},
	}
	r := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dets := r.Extract("Card on file: " + tc.want + ".")
			if d := findKind(t, dets, KindCreditCard); d == nil || d.Text != tc.want {
				t.Errorf("expected CREDIT_CARD %q, got %+v", tc.want, d)
			}
		})
	}
}

func TestCreditCard_DiscoverRejectsFailedLuhn(t *testing.T) {
	r := New()
	dets := r.Extract("Card on file: 6011000000000005.")
	if d := findKind(t, dets, KindCreditCard); d != nil {
		t.Errorf("expected no CREDIT_CARD match for bad Luhn, got %+v", d)
	}
}

func TestPhone_TruePositives(t *testing.T) {
	cases := []struct {
		name, input, want string
	}{
		{"international", "Call +966 55 123 4567 now.", "+966 55 123 4567"},
		{"00-prefixed", "Dial 00966551234567 instead.", "00966551234567"},
		{"us parenthesized", "Reach us at (415) 555-0100.", "(415) 555-0100"},
		{"us dashed", "Reach us at 415-555-0100.", "415-555-0100"},
		{"toll free", "Support line 1-800-555-0199.", "1-800-555-0199"},
		{"uk landline", "Office on 020 7946 0958 today.", "020 7946 0958"},
		{"uk mobile", "Her mobile is 07911 123456.", "07911 123456"},
		{"saudi domestic", "Mobile 0551234567 on file.", "0551234567"},
		{"with extension", "Call 415-555-0100 ext 204 for billing.", "415-555-0100 ext 204"},
	}
	r := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dets := r.Extract(tc.input)
			if d := findKind(t, dets, KindPhone); d == nil || d.Text != tc.want {
				t.Errorf("expected PHONE %q, got %+v", tc.want, d)
			}
		})
	}
}

func TestURL_TruePositives(t *testing.T) {
	cases := []struct{ name, input, want string }{
		{"https", "See https://example.com/path for details.", "https://example.com/path"},
		{"http", "See http://example.com/path for details.", "http://example.com/path"},
		{"ftp", "Files are at ftp://files.example.com/pub for download.", "ftp://files.example.com/pub"},
	}
	r := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dets := r.Extract(tc.input)
			if d := findKind(t, dets, KindURL); d == nil || d.Text != tc.want {
				t.Errorf("expected URL %q, got %+v", tc.want, d)
			}
		})
	}
}

func TestIBAN_TruePositives(t *testing.T) {
	r := New()
	dets := r.Extract("Transfer to DE89370400440532013000 today.")
	if d := findKind(t, dets, KindIBAN); d == nil || d.Text != "DE89370400440532013000" {
		t.Errorf("expected IBAN match, got %+v", d)
	}
}

func TestIBAN_TrueNegatives_FailedChecksum(t *testing.T) {
	r := New()
	dets := r.Extract("Transfer to DE89370400440532013001 today.")
	if d := findKind(t, dets, KindIBAN); d != nil {
		t.Errorf("expected no IBAN match for bad mod-97 checksum, got %+v", d)
	}
}

func TestDomain_TruePositives(t *testing.T) {
	r := New()
	dets := r.Extract("See our site at example.com for details.")
	if d := findKind(t, dets, KindDomain); d == nil || d.Text != "example.com" {
		t.Errorf("expected DOMAIN example.com, got %+v", d)
	}
}

func TestDomain_TrueNegatives_InsideEmailOrURL(t *testing.T) {
	r := New()

	dets := r.Extract("Email me at jane@example.com please.")
	if d := findKind(t, dets, KindDomain); d != nil {
		t.Errorf("unexpected bare DOMAIN inside an email address: %+v", d)
	}

	dets = r.Extract("Visit https://example.com/path for more.")
	if d := findKind(t, dets, KindDomain); d != nil {
		t.Errorf("unexpected bare DOMAIN inside a URL: %+v", d)
	}
}

func TestSaudiID_TruePositives(t *testing.T) {
	r := New()
	dets := r.Extract("National ID 1234567890 on file.")
	if d := findKind(t, dets, KindSaudiID); d == nil || d.Text != "1234567890" {
		t.Errorf("expected SAUDI_ID match, got %+v", d)
	}
}

func TestSaudiID_TrueNegatives(t *testing.T) {
	cases := []string{
		"Call +1234567890 now.",
		"Order number 9876543210 confirmed.",
	}
	r := New()
	for _, in := range cases {
		dets := r.Extract(in)
		if d := findKind(t, dets, KindSaudiID); d != nil {
			t.Errorf("unexpected SAUDI_ID match in %q: %+v", in, d)
		}
	}
}

func TestSSN_TruePositives(t *testing.T) {
	r := New()
	dets := r.Extract("SSN 123-45-6789 on file.")
	if d := findKind(t, dets, KindSSN); d == nil || d.Text != "123-45-6789" {
		t.Errorf("expected SSN match, got %+v", d)
	}
}

func TestSSN_TrueNegatives_InvalidAreaCodes(t *testing.T) {
	cases := []string{
		"SSN 000-45-6789 on file.",
		"SSN 666-45-6789 on file.",
		"SSN 900-45-6789 on file.",
	}
	r := New()
	for _, in := range cases {
		dets := r.Extract(in)
		if d := findKind(t, dets, KindSSN); d != nil {
			t.Errorf("unexpected SSN match in %q: %+v", in, d)
		}
	}
}

func TestCustomPatternFinders_EmitsCustomKind(t *testing.T) {
	finders, err := CustomPatternFinders([]CustomPattern{
		{Name: "Employee ID", Pattern: `EMP-\d{6}`, Confidence: 90},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := New()
	r.SetCustomPatterns(finders)
	dets := r.Extract("Badge EMP-123456 issued.")
	if d := findKind(t, dets, KindCustom); d == nil || d.Text != "EMP-123456" {
		t.Errorf("expected CUSTOM match, got %+v", d)
	}
}

func TestCustomPatternFinders_InvalidRegexErrors(t *testing.T) {
	_, err := CustomPatternFinders([]CustomPattern{
		{Name: "bad", Pattern: `(unclosed`},
	})
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}
