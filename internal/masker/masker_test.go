package masker

import (
	"testing"

	"github.com/lucidshield/sentinel/internal/recognizer"
)

// det builds a finalized detection as the recognizer would return it,
// including the placeholder the allocator (component E) would have
// already assigned.
func det(id string, kind recognizer.Kind, start, end int, text string, placeholder string) recognizer.Detection {
	return recognizer.Detection{
		ID: id, Kind: kind, Start: start, End: end, Text: text,
		Approved: true, Placeholder: placeholder,
	}
}

func TestApplyMasking_UsesAssignedPlaceholdersInOrder(t *testing.T) {
	text := "Alice emailed alice@example.com."
	dets := []recognizer.Detection{
		det("a", recognizer.KindPerson, 0, 5, "Alice", "[PERSON_1]"),
		det("b", recognizer.KindEmail, 14, 31, "alice@example.com", "[EMAIL_2]"),
	}

	res := ApplyMasking(text, dets)

	want := "[PERSON_1] emailed [EMAIL_2]."
	if res.RedactedText != want {
		t.Errorf("RedactedText = %q, want %q", res.RedactedText, want)
	}
	if len(res.Mappings) != 2 {
		t.Fatalf("len(Mappings) = %d, want 2", len(res.Mappings))
	}
	if res.Mappings[0].Placeholder != "[PERSON_1]" || res.Mappings[1].Placeholder != "[EMAIL_2]" {
		t.Errorf("Mappings out of order: %+v", res.Mappings)
	}
}

func TestApplyMasking_SkipsUnapproved(t *testing.T) {
	text := "Alice met Bob."
	dets := []recognizer.Detection{
		det("a", recognizer.KindPerson, 0, 5, "Alice", "[PERSON_1]"),
		{ID: "b", Kind: recognizer.KindPerson, Start: 10, End: 13, Text: "Bob", Approved: false, Placeholder: "[PERSON_2]"},
	}

	res := ApplyMasking(text, dets)

	want := "[PERSON_1] met Bob."
	if res.RedactedText != want {
		t.Errorf("RedactedText = %q, want %q", res.RedactedText, want)
	}
	if len(res.Mappings) != 1 {
		t.Errorf("expected one mapping for the approved detection only, got %+v", res.Mappings)
	}
}

func TestApplyMasking_RepeatedTextGetsDistinctPlaceholders(t *testing.T) {
	// Placeholder indexing is per detection ordinal, not per distinct
	// value: three occurrences of "Bob" at different positions get three
	// different placeholders (spec §9, "Placeholder indexing").
	text := "Bob and Bob and Bob"
	dets := []recognizer.Detection{
		det("a", recognizer.KindPerson, 0, 3, "Bob", "[PERSON_1]"),
		det("b", recognizer.KindPerson, 8, 11, "Bob", "[PERSON_2]"),
		det("c", recognizer.KindPerson, 16, 19, "Bob", "[PERSON_3]"),
	}

	res := ApplyMasking(text, dets)

	want := "[PERSON_1] and [PERSON_2] and [PERSON_3]"
	if res.RedactedText != want {
		t.Errorf("RedactedText = %q, want %q", res.RedactedText, want)
	}
	if len(res.Mappings) != 3 {
		t.Fatalf("len(Mappings) = %d, want 3", len(res.Mappings))
	}
}

func TestApplyMasking_MergesDetectionsSharingAPlaceholder(t *testing.T) {
	// A caller supplying external detections may collide two spans onto
	// the same placeholder; the rewriter merges their originals rather
	// than emitting a duplicate mapping entry (component F step 4).
	text := "foo bar"
	dets := []recognizer.Detection{
		det("a", recognizer.KindCustom, 0, 3, "foo", "[CUSTOM_1]"),
		det("b", recognizer.KindCustom, 4, 7, "bar", "[CUSTOM_1]"),
	}

	res := ApplyMasking(text, dets)

	if len(res.Mappings) != 1 {
		t.Fatalf("len(Mappings) = %d, want 1", len(res.Mappings))
	}
	if len(res.Mappings[0].Originals) != 2 {
		t.Errorf("Originals = %v, want [foo bar]", res.Mappings[0].Originals)
	}
}

func TestApplyMasking_EmptyDetections(t *testing.T) {
	text := "Nothing to mask here."
	res := ApplyMasking(text, nil)
	if res.RedactedText != text {
		t.Errorf("RedactedText = %q, want %q", res.RedactedText, text)
	}
	if len(res.Mappings) != 0 {
		t.Errorf("expected no mappings, got %v", res.Mappings)
	}
}

func TestApplyMasking_AllUnapprovedReturnsUnchanged(t *testing.T) {
	text := "Bob called."
	dets := []recognizer.Detection{
		{ID: "a", Kind: recognizer.KindPerson, Start: 0, End: 3, Text: "Bob", Approved: false, Placeholder: "[PERSON_1]"},
	}

	res := ApplyMasking(text, dets)
	if res.RedactedText != text {
		t.Errorf("RedactedText = %q, want %q", res.RedactedText, text)
	}
	if len(res.Mappings) != 0 {
		t.Errorf("expected no mappings, got %v", res.Mappings)
	}
}

func TestApplyMasking_UTF8Multibyte(t *testing.T) {
	text := "Herr Müller wohnt hier."
	start := len("Herr ")
	end := start + len("Müller")
	dets := []recognizer.Detection{det("a", recognizer.KindPerson, start, end, "Müller", "[PERSON_1]")}

	res := ApplyMasking(text, dets)
	want := "Herr [PERSON_1] wohnt hier."
	if res.RedactedText != want {
		t.Errorf("RedactedText = %q, want %q", res.RedactedText, want)
	}
}

func TestApplyMasking_RejectsSpanWithMismatchedText(t *testing.T) {
	// A caller-supplied detection whose Text no longer matches the slice
	// at [start,end) (e.g. stale offsets after upstream edits) is dropped
	// rather than corrupting the splice.
	text := "Call 555-0100 now."
	dets := []recognizer.Detection{
		det("a", recognizer.KindPhone, 5, 13, "555-9999", "[PHONE_1]"),
	}

	res := ApplyMasking(text, dets)
	if res.RedactedText != text {
		t.Errorf("RedactedText = %q, want unchanged %q", res.RedactedText, text)
	}
}
