// Command slopmeter-admit runs the admission gate over a file of answers
//
// each input line is one answer, each output line is a JSON record;
// with -score admitted answers are also sent to the inference endpoint
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"slopmeter/internal/adapters/inference"
	"slopmeter/internal/core/admission"
	"slopmeter/internal/core/questions"
	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/logger"
	"slopmeter/internal/services/gate"
)

type record struct {
	Line       int      `json:"line"`
	Valid      bool     `json:"valid"`
	Stage      string   `json:"stage,omitempty"`
	Sanitized  string   `json:"sanitized"`
	Error      string   `json:"error,omitempty"`
	Perplexity *float64 `json:"perplexity,omitempty"`
	ScoreError string   `json:"score_error,omitempty"`
}

type summary struct {
	Total   int
	Valid   int
	ByStage map[string]int
}

func admit(g *admission.Gate, lines []string) ([]record, summary) {
	sum := summary{ByStage: map[string]int{}}
	out := make([]record, len(lines))
	for i, l := range lines {
		res := g.Admit(l)
		out[i] = record{Line: i + 1, Valid: res.Valid, Stage: string(res.Stage), Sanitized: res.Sanitized, Error: res.Error}
		sum.Total++
		if res.Valid {
			sum.Valid++
		} else {
			sum.ByStage[string(res.Stage)]++
		}
	}
	return out, sum
}

// score fills Perplexity for valid records, at most workers calls in flight
func score(ctx context.Context, s inference.Scorer, qid, workers int, recs []record) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i := range recs {
		if !recs[i].Valid {
			continue
		}
		g.Go(func() error {
			res, err := s.Infer(ctx, questions.Prompt(qid, recs[i].Sanitized))
			if err != nil {
				recs[i].ScoreError = err.Error()
				return nil
			}
			p := res.TotalPerplexity
			recs[i].Perplexity = &p
			return nil
		})
	}
	_ = g.Wait()
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Named("admit")

	var (
		in       = flag.String("in", "-", "input file, one answer per line, '-' for stdin")
		doScore  = flag.Bool("score", false, "score admitted answers with the inference endpoint")
		question = flag.Int("question", 0, "question id used to build prompts with -score")
		workers  = flag.Int("workers", 2, "concurrent inference calls with -score")
	)
	flag.Parse()

	var src io.Reader = os.Stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			l.Fatal().Err(err).Msg("open input")
		}
		defer f.Close()
		src = f
	}
	lines, err := readLines(src)
	if err != nil {
		l.Fatal().Err(err).Msg("read input")
	}

	built, err := gate.New(gate.FromConfig(config.New()))
	if err != nil {
		l.Fatal().Err(err).Msg("gate")
	}
	recs, sum := admit(built.Gate, lines)

	if *doScore {
		client := inference.New(inference.ConfigFromEnv())
		if !client.Configured() {
			l.Fatal().Msg(inference.MsgNotConfigured)
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		score(ctx, client, *question, *workers, recs)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			l.Fatal().Err(err).Msg("write output")
		}
	}
	l.Info().Int("total", sum.Total).Int("valid", sum.Valid).Interface("rejected", sum.ByStage).Msg("admission done")
}
