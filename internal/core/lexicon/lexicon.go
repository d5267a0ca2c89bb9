// Package lexicon holds the word lists used by admission
// a Lexicon is built once at startup and is read only afterwards, so it is safe to share
package lexicon

import (
	"bufio"
	"compress/gzip"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
)

//go:embed data/*.txt data/*.txt.gz
var files embed.FS

// GzipExt marks a list stored compressed, the dictionary ships this way
const GzipExt = ".gz"

// List file names; each may be stored as name or name+GzipExt
const (
	WordsFile = "words.txt"
	AllowFile = "allow.txt"
	BlockFile = "block.txt"
)

// Lexicon is an immutable dictionary, allow-list and blocklist
type Lexicon struct {
	words map[string]struct{}
	allow map[string]struct{}
	block []string
}

// New builds a Lexicon from plain lists, entries are normalised with Normalize
func New(words, allow, block []string) *Lexicon {
	l := &Lexicon{
		words: toSet(words),
		allow: toSet(allow),
	}
	seen := map[string]struct{}{}
	for _, w := range block {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		l.block = append(l.block, w)
	}
	sort.Strings(l.block)
	return l
}

// Default loads the lists embedded in the binary
func Default() (*Lexicon, error) {
	words, err := ReadEmbedded(WordsFile)
	if err != nil {
		return nil, err
	}
	allow, err := ReadEmbedded(AllowFile)
	if err != nil {
		return nil, err
	}
	block, err := ReadEmbedded(BlockFile)
	if err != nil {
		return nil, err
	}
	return New(words, allow, block), nil
}

// MustDefault is Default that panics, for tests and tools
func MustDefault() *Lexicon {
	l, err := Default()
	if err != nil {
		panic(err)
	}
	return l
}

// ReadEmbedded parses one of the embedded list files
func ReadEmbedded(name string) ([]string, error) {
	data, err := fs.Sub(files, "data")
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	return ReadListFS(data, name)
}

// Resolve returns the file in fsys holding list name, preferring the plain file over name+GzipExt
func Resolve(fsys fs.FS, name string) (string, error) {
	for _, cand := range []string{name, name + GzipExt} {
		_, err := fs.Stat(fsys, cand)
		if err == nil {
			return cand, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("lexicon: stat %s: %w", cand, err)
		}
	}
	return "", fmt.Errorf("lexicon: %s: %w", name, fs.ErrNotExist)
}

// ReadListFS resolves list name in fsys and parses it, gunzipping a GzipExt file
func ReadListFS(fsys fs.FS, name string) ([]string, error) {
	file, err := Resolve(fsys, name)
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(file)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", file, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(file, GzipExt) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("lexicon: gunzip %s: %w", file, err)
		}
		defer zr.Close()
		r = zr
	}
	return ParseList(r)
}

// ParseList reads one entry per line, skipping blanks and # comments
func ParseList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lexicon: parse list: %w", err)
	}
	return out, nil
}

// Normalize lower-cases and trims a list entry
func Normalize(w string) string { return strings.ToLower(strings.TrimSpace(w)) }

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		if w = Normalize(w); w != "" {
			m[w] = struct{}{}
		}
	}
	return m
}

// Known reports whether w is a dictionary word, an allowed token,
// or a regular inflection of a dictionary word
func (l *Lexicon) Known(w string) bool {
	if l.Allowed(w) || l.InDictionary(w) {
		return true
	}
	for _, base := range Stems(w) {
		if l.InDictionary(base) {
			return true
		}
	}
	return false
}

// InDictionary reports an exact dictionary hit
func (l *Lexicon) InDictionary(w string) bool {
	_, ok := l.words[w]
	return ok
}

// Allowed reports an exact allow-list hit
func (l *Lexicon) Allowed(w string) bool {
	_, ok := l.allow[w]
	return ok
}

// Blocklist returns a copy of the sorted blocklist
func (l *Lexicon) Blocklist() []string {
	return append([]string(nil), l.block...)
}

// Size returns the number of dictionary and allow-list entries
func (l *Lexicon) Size() (words, allow int) { return len(l.words), len(l.allow) }
