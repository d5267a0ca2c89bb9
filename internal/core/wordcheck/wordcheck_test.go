package wordcheck

import (
	"reflect"
	"testing"

	"slopmeter/internal/core/lexicon"
	"slopmeter/internal/platform/testkit"
)

func small() *lexicon.Lexicon {
	return lexicon.New(
		[]string{"i", "don", "think", "we", "can", "do", "this", "the", "dog", "is", "happy", "john", "went", "home"},
		[]string{"lol", "tbh"},
		nil,
	)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	c := New(small())
	cases := []struct {
		name    string
		in      string
		valid   bool
		invalid []string
		pct     float64
	}{
		{"empty", "", false, []string{}, 0},
		{"digits and punctuation only", "123 !!! 456", false, []string{}, 0},
		{"contractions", "I don't think we can't do this", true, []string{}, 100},
		{"possessive", "the dog's home", true, []string{}, 100},
		{"slang", "lol tbh the dog is happy", true, []string{}, 100},
		{"four of five", "the dog is happy zorblax", true, []string{"zorblax"}, 80},
		{"three of four", "the dog is zorblax", false, []string{"zorblax"}, 75},
		{"dedupe first seen", "qq ww qq ee the", false, []string{"qq", "ww", "ee"}, 20},
		{"cap at five", "aa bb cc dd ee ff gg", false, []string{"aa", "bb", "cc", "dd", "ee"}, 0},
		{"case folded", "THE DOG IS HAPPY", true, []string{}, 100},
		{"apostrophe head unknown", "zz'ok the dog is happy", true, []string{"zz'ok"}, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Check(tc.in)
			if got.Valid != tc.valid {
				t.Fatalf("Valid = %v, want %v (%+v)", got.Valid, tc.valid, got)
			}
			if !reflect.DeepEqual(got.InvalidWords, tc.invalid) {
				t.Fatalf("InvalidWords = %v, want %v", got.InvalidWords, tc.invalid)
			}
			testkit.ApproxEqual(t, "ValidPercentage", got.ValidPercentage, tc.pct, 1e-9)
		})
	}
}

func TestCheck_EmbeddedLexicon(t *testing.T) {
	t.Parallel()

	c := New(lexicon.MustDefault())

	got := c.Check("asdfghjkl qwertyuiop zxcvbnm")
	if got.Valid {
		t.Fatalf("keyboard mash accepted: %+v", got)
	}
	want := []string{"asdfghjkl", "qwertyuiop", "zxcvbnm"}
	if !reflect.DeepEqual(got.InvalidWords, want) {
		t.Fatalf("InvalidWords = %v, want %v", got.InvalidWords, want)
	}

	got = c.Check("I don't think we can't do this")
	if !got.Valid || len(got.InvalidWords) != 0 {
		t.Fatalf("contractions rejected: %+v", got)
	}
}

func TestCheck_OrdinaryEnglish(t *testing.T) {
	t.Parallel()

	c := New(lexicon.MustDefault())
	for _, in := range []string{
		"Thinking about whether quantum computing will revolutionize cryptography",
		"My grandmother's recipe for lasagna is unbeatable honestly",
		"We hiked to a waterfall and then watched a documentary",
		"I refactored the middleware and fixed a flaky integration test",
		"Spent the afternoon watering succulents and organizing my bookshelf",
		"Honestly I'd rather be kayaking than sitting through another meeting",
		"The neighborhood bakery sells croissants that are absolutely incredible",
		"My daughter's soccer tournament got postponed because of thunderstorms",
		"I'm learning to play the ukulele and my fingers are sore",
		"We argued about whether pineapple belongs on pizza again",
		"Debugging a memory leak in the authentication service all morning",
		"Bought a secondhand bicycle and rode along the riverside trail",
	} {
		got := c.Check(in)
		if !got.Valid || len(got.InvalidWords) != 0 {
			t.Fatalf("%q rejected: %+v", in, got)
		}
	}
}

func TestCheck_ValidIffThreshold(t *testing.T) {
	t.Parallel()

	c := New(small())
	for _, in := range []string{"", "the", "the xx", "the dog xx yy", "a b c d e f", "the dog is happy x"} {
		r := c.Check(in)
		if r.ValidPercentage < 0 || r.ValidPercentage > 100 {
			t.Fatalf("%q: percentage %v out of range", in, r.ValidPercentage)
		}
		if r.Valid != (r.ValidPercentage >= Threshold) {
			t.Fatalf("%q: Valid=%v with %v%%", in, r.Valid, r.ValidPercentage)
		}
	}
}

func TestNew_NilLexiconPanics(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { New(nil) })
}
