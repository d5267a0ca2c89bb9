// Package gate assembles the admission gate from configuration
package gate

import (
	"fmt"
	"os"

	"slopmeter/internal/core/admission"
	"slopmeter/internal/core/lexicon"
	"slopmeter/internal/core/profanity"
	"slopmeter/internal/core/wordcheck"
	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/logger"
)

// Options configures the gate
// LexiconDir, when set, replaces the embedded lists with words.txt, allow.txt and block.txt from disk,
// any of which may be gzipped as name.gz
type Options struct {
	Limits        admission.Limits
	ProfanityMode string
	LexiconDir    string
}

// FromConfig reads CORE_ADMISSION_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_ADMISSION_")
	return Options{
		Limits: admission.Limits{
			MinLength: c.MayIntIn("MIN_LENGTH", admission.DefaultMinLength, 1, 4096),
			MaxLength: c.MayIntIn("MAX_LENGTH", admission.DefaultMaxLength, 1, 4096),
		},
		ProfanityMode: c.MayEnum("PROFANITY_MODE", profanity.ModeLexicon, profanity.ModeLexicon, profanity.ModeFallback),
		LexiconDir:    c.MayString("LEXICON_DIR", ""),
	}
}

// Built is an assembled gate and what it resolved to
type Built struct {
	Gate          *admission.Gate
	Lexicon       *lexicon.Lexicon
	ProfanityMode string
}

// New loads the lexicon, resolves the profanity filter and builds the gate
// a requested mode that resolves differently is logged, not fatal
func New(o Options) (Built, error) {
	if o.Limits.MinLength > 0 && o.Limits.MaxLength > 0 && o.Limits.MinLength > o.Limits.MaxLength {
		return Built{}, fmt.Errorf("gate: min length %d exceeds max length %d", o.Limits.MinLength, o.Limits.MaxLength)
	}
	lex, err := Load(o.LexiconDir)
	if err != nil {
		return Built{}, err
	}
	filter, mode, err := profanity.Resolve(o.ProfanityMode, lex)
	if err != nil {
		return Built{}, fmt.Errorf("gate: %w", err)
	}

	log := logger.Named("gate")
	if want := o.ProfanityMode; want != "" && want != mode {
		log.Warn().Str("requested", want).Str("effective", mode).Msg("profanity filter fell back")
	}
	g := admission.New(o.Limits, wordcheck.New(lex), filter)
	log.Info().
		Int("min_length", g.Limits().MinLength).
		Int("max_length", g.Limits().MaxLength).
		Str("profanity", mode).
		Str("lexicon", sourceName(o.LexiconDir)).
		Msg("admission gate ready")

	return Built{Gate: g, Lexicon: lex, ProfanityMode: mode}, nil
}

// Load returns the embedded lexicon, or the one in dir when dir is set
func Load(dir string) (*lexicon.Lexicon, error) {
	if dir == "" {
		return lexicon.Default()
	}
	fsys := os.DirFS(dir)
	lists := make([][]string, 3)
	for i, name := range []string{lexicon.WordsFile, lexicon.AllowFile, lexicon.BlockFile} {
		l, err := lexicon.ReadListFS(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("gate: lexicon dir %s: %w", dir, err)
		}
		lists[i] = l
	}
	return lexicon.New(lists[0], lists[1], lists[2]), nil
}

func sourceName(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}
