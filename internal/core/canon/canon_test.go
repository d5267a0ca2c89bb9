package canon

import (
	"testing"
)

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Hello There", "hello there"},
		{"already lower", "already lower"},
		{"", ""},
		{"MIXED 123 Case!", "mixed 123 case!"},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHash(t *testing.T) {
	t.Parallel()

	a := Hash(0, "Hello There Friend Of Mine")
	b := Hash(0, "hello there friend of mine")
	if a != b {
		t.Fatalf("case variants hash differently: %s vs %s", a, b)
	}
	if other := Hash(1, "hello there friend of mine"); other == a {
		t.Fatalf("questions 0 and 1 share hash %s", a)
	}
	// md5("0:hello")
	if got := Hash(0, "HELLO"); got != "94d57763f89088f12e384c9a6f952856" {
		t.Fatalf("Hash(0, HELLO) = %s", got)
	}
	if !ValidHash(a) {
		t.Fatalf("ValidHash(%q) = false", a)
	}
}

func TestValidHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{"", "abc", "5D41402ABC4B2A76B9719D911017C592", "5d41402abc4b2a76b9719d911017c59z"} {
		if ValidHash(h) {
			t.Fatalf("ValidHash(%q) = true", h)
		}
	}
}
