package lexicon

import "strings"

// Stems returns candidate base forms for a regularly inflected word
// it only strips suffixes, so it never accepts a word whose base is unknown
// e.g. "dreams" -> dream, "baked" -> bake, "running" -> run, "happily" -> happy
func Stems(w string) []string {
	var out []string
	add := func(base string) {
		if len(base) >= 2 {
			out = append(out, base)
		}
	}
	cut := func(suffix string) (string, bool) {
		if len(w) > len(suffix)+1 && strings.HasSuffix(w, suffix) {
			return w[:len(w)-len(suffix)], true
		}
		return "", false
	}

	if b, ok := cut("ies"); ok {
		add(b + "y")
	}
	if b, ok := cut("ied"); ok {
		add(b + "y")
	}
	if b, ok := cut("ily"); ok {
		add(b + "y")
	}
	if b, ok := cut("es"); ok {
		add(b)
	}
	if b, ok := cut("s"); ok && !strings.HasSuffix(w, "ss") {
		add(b)
	}
	for _, suf := range []string{"ed", "ing", "er", "est"} {
		if b, ok := cut(suf); ok {
			add(b)
			add(b + "e")
			if undoubled, ok := undouble(b); ok {
				add(undoubled)
			}
		}
	}
	for _, suf := range []string{"ly", "ness", "ment", "ful"} {
		if b, ok := cut(suf); ok {
			add(b)
		}
	}
	return out
}

// undouble turns "runn" into "run"
func undouble(b string) (string, bool) {
	n := len(b)
	if n < 3 || b[n-1] != b[n-2] {
		return "", false
	}
	return b[:n-1], true
}
