package questions

import (
	"strings"
	"testing"

	"slopmeter/internal/core/answerspan"
)

func TestText(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:  "What did you do today?",
		1:  "What are you thinking about?",
		2:  "What are your dreams for the future?",
		3:  Unknown,
		-1: Unknown,
	}
	for id, want := range cases {
		if got := Text(id); got != want {
			t.Fatalf("Text(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	got := Prompt(0, "I Walked The DOG")
	want := "q:What did you do today? a:i walked the dog"
	if got != want {
		t.Fatalf("Prompt = %q, want %q", got, want)
	}
	if !strings.Contains(got, answerspan.DefaultMarker) {
		t.Fatalf("prompt lacks answer marker %q", answerspan.DefaultMarker)
	}
	if got := Prompt(9, "x"); got != "q:Unknown question a:x" {
		t.Fatalf("unknown prompt = %q", got)
	}
}

func TestAll_IsCopy(t *testing.T) {
	t.Parallel()

	all := All()
	if len(all) != 3 {
		t.Fatalf("len = %d", len(all))
	}
	all[0].Text = "mutated"
	if Text(0) == "mutated" {
		t.Fatalf("All leaked the registry")
	}
	if !Known(2) || Known(3) {
		t.Fatalf("Known mismatch")
	}
}
