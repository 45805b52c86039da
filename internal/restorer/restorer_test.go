package restorer

import (
	"testing"

	"github.com/lucidshield/sentinel/internal/masker"
)

func TestRestore_RoundTrip(t *testing.T) {
	mappings := []masker.Mapping{
		{Placeholder: "[PERSON_1]", Kind: "person", Originals: []string{"Alice"}},
		{Placeholder: "[EMAIL_2]", Kind: "email", Originals: []string{"alice@example.com"}},
	}
	text := "[PERSON_1] emailed [EMAIL_2]."
	want := "Alice emailed alice@example.com."

	if got := Restore(text, mappings); got != want {
		t.Errorf("Restore = %q, want %q", got, want)
	}
}

func TestRestore_LongestTokenFirst(t *testing.T) {
	mappings := []masker.Mapping{
		{Placeholder: "[PERSON_1]", Originals: []string{"Alice"}},
		{Placeholder: "[PERSON_10]", Originals: []string{"Bob"}},
	}
	text := "[PERSON_10] and [PERSON_1]"
	want := "Bob and Alice"

	if got := Restore(text, mappings); got != want {
		t.Errorf("Restore = %q, want %q", got, want)
	}
}

func TestRestore_EmptyMappings(t *testing.T) {
	text := "Nothing to restore."
	if got := Restore(text, nil); got != text {
		t.Errorf("Restore = %q, want %q", got, text)
	}
}

func TestStreamRestorer_BuffersSplitToken(t *testing.T) {
	mappings := []masker.Mapping{{Placeholder: "[PERSON_1]", Originals: []string{"Alice"}}}
	sr := NewStreamRestorer(mappings)

	out := sr.Process("Hello [PER")
	out += sr.Process("SON_1], how are you?")
	out += sr.Flush()

	want := "Hello Alice, how are you?"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestStreamRestorer_Flush(t *testing.T) {
	mappings := []masker.Mapping{{Placeholder: "[PERSON_1]", Originals: []string{"Alice"}}}
	sr := NewStreamRestorer(mappings)

	out := sr.Process("end [")
	if out != "end " {
		t.Errorf("Process = %q, want %q", out, "end ")
	}
	flushed := sr.Flush()
	if flushed != "[" {
		t.Errorf("Flush = %q, want %q", flushed, "[")
	}
}
