// Command slopmeter-lexpack lints and normalises the admission word lists
//
// it reads words.txt, allow.txt and block.txt from -root, each possibly gzipped as name.gz,
// prints a JSON report, and with -write rewrites each list lower-cased, de-duplicated
// and sorted, keeping its compression
package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"slopmeter/internal/core/lexicon"
)

var listNames = []string{lexicon.WordsFile, lexicon.AllowFile, lexicon.BlockFile}

type listReport struct {
	Name       string   `json:"name"`
	File       string   `json:"file"`
	Entries    int      `json:"entries"`
	Unique     int      `json:"unique"`
	Duplicates []string `json:"duplicates,omitempty"`
	Unnormal   []string `json:"unnormalised,omitempty"`
	BadChars   []string `json:"bad_chars,omitempty"`
}

type report struct {
	Root      string       `json:"root"`
	Lists     []listReport `json:"lists"`
	Conflicts []string     `json:"allow_block_conflicts,omitempty"`
	OK        bool         `json:"ok"`
}

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "lexpack:", err)
		os.Exit(1)
	}
}

// wordChar is what a dictionary or list entry may contain
func wordChar(r rune) bool { return unicode.IsLetter(r) || r == '\'' || r == '-' }

// lint checks one list and returns it normalised
func lint(name string, entries []string) (listReport, []string) {
	rep := listReport{Name: name, Entries: len(entries)}
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		n := lexicon.Normalize(e)
		if n != e {
			rep.Unnormal = append(rep.Unnormal, e)
		}
		if strings.IndexFunc(n, func(r rune) bool { return !wordChar(r) }) >= 0 {
			rep.BadChars = append(rep.BadChars, e)
		}
		if seen[n] {
			rep.Duplicates = append(rep.Duplicates, n)
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	rep.Unique = len(out)
	return rep, out
}

func conflicts(allow, block []string) []string {
	in := make(map[string]bool, len(allow))
	for _, a := range allow {
		in[a] = true
	}
	var out []string
	for _, b := range block {
		if in[b] {
			out = append(out, b)
		}
	}
	return out
}

func build(root string) (report, map[string][]string, error) {
	rep := report{Root: root, OK: true}
	fsys := os.DirFS(root)
	norm := make(map[string][]string, len(listNames))
	for _, name := range listNames {
		file, err := lexicon.Resolve(fsys, name)
		if err != nil {
			return report{}, nil, err
		}
		entries, err := lexicon.ReadListFS(fsys, name)
		if err != nil {
			return report{}, nil, err
		}
		lr, out := lint(name, entries)
		lr.File = file
		if len(lr.Duplicates)+len(lr.Unnormal)+len(lr.BadChars) > 0 {
			rep.OK = false
		}
		rep.Lists = append(rep.Lists, lr)
		norm[name] = out
	}
	rep.Conflicts = conflicts(norm[lexicon.AllowFile], norm[lexicon.BlockFile])
	if len(rep.Conflicts) > 0 {
		rep.OK = false
	}
	return rep, norm, nil
}

// writeList writes entries one per line, gzipped when path ends in lexicon.GzipExt
func writeList(path string, entries []string) error {
	var b bytes.Buffer
	var w io.Writer = &b
	var zw *gzip.Writer
	if strings.HasSuffix(path, lexicon.GzipExt) {
		var err error
		if zw, err = gzip.NewWriterLevel(&b, gzip.BestCompression); err != nil {
			return err
		}
		w = zw
	}
	for _, e := range entries {
		if _, err := io.WriteString(w, e+"\n"); err != nil {
			return err
		}
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}

func main() {
	var (
		root   = flag.String("root", "./internal/core/lexicon/data", "directory holding the list files")
		write  = flag.Bool("write", false, "rewrite the lists normalised in place")
		strict = flag.Bool("strict", false, "exit 1 when the lint finds anything")
		pretty = flag.Bool("pretty", true, "pretty-print JSON")
	)
	flag.Parse()

	rep, norm, err := build(*root)
	must(err)

	var enc []byte
	if *pretty {
		enc, err = json.MarshalIndent(rep, "", "  ")
	} else {
		enc, err = json.Marshal(rep)
	}
	must(err)
	_, _ = os.Stdout.Write(append(enc, '\n'))

	if *write {
		for _, lr := range rep.Lists {
			must(writeList(filepath.Join(*root, lr.File), norm[lr.Name]))
		}
		_, _ = fmt.Fprintf(os.Stderr, "rewrote %d lists in %s\n", len(listNames), *root)
	}
	if *strict && !rep.OK {
		os.Exit(1)
	}
}
