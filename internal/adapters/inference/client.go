// Package inference is the client for the hosted perplexity scoring endpoint
// one blocking runsync call per request, never retried, behind a circuit breaker
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"slopmeter/internal/core/answerspan"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/metrics"

	"github.com/sony/gobreaker"
)

// Messages surfaced to API callers
const (
	MsgNotConfigured = "Inference API not configured"
	MsgJobFailed     = "Job failed on inference endpoint"
	MsgTimeout       = "inference timed out"
	MsgCircuitOpen   = "inference endpoint unavailable, try again shortly"
)

const statusFailed = "FAILED"

// Result is the scored trace
type Result struct {
	TotalPerplexity float64                 `json:"total_perplexity"`
	ByToken         []answerspan.TokenScore `json:"by_token"`
}

// Scorer is what handlers depend on
type Scorer interface {
	Configured() bool
	ModelID() int
	Infer(ctx context.Context, text string) (Result, error)
}

type request struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
}

type response struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Output *Result `json:"output"`
	Error  string  `json:"error"`
}

// Client talks to a runpod style /runsync endpoint
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     logger.Logger
	now     func() time.Time
}

var _ Scorer = (*Client)(nil)

// New builds a client, an unconfigured client answers every Infer with MsgNotConfigured
func New(cfg Config) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:  cfg,
		http: &http.Client{},
		log:  *logger.Named("inference"),
		now:  time.Now,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "inference",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// a caller hanging up says nothing about the endpoint
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.Set(float64(to))
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("inference breaker state change")
		},
	})
	return c
}

// Configured reports whether the endpoint can be called at all
func (c *Client) Configured() bool { return c.cfg.Configured() }

// ModelID names the model recorded on stored rows
func (c *Client) ModelID() int { return c.cfg.ModelID }

// Infer scores text, every failure is ErrorCodeUnavailable
func (c *Client) Infer(ctx context.Context, text string) (Result, error) {
	if !c.Configured() {
		return Result{}, perr.Unavailablef(MsgNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := c.now()
	out, err := c.breaker.Execute(func() (any, error) { return c.call(ctx, text) })
	elapsed := c.now().Sub(start)

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "open"
		err = perr.Wrap(err, perr.ErrorCodeUnavailable, MsgCircuitOpen)
	case errors.Is(err, context.DeadlineExceeded):
		outcome = "timeout"
		err = perr.FromContext(err, "inference")
	case errors.Is(err, context.Canceled):
		outcome = "canceled"
		err = perr.FromContext(err, "inference")
	default:
		outcome = "error"
	}
	metrics.InferenceDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("outcome", outcome).Dur("latency", elapsed).Msg("inference failed")
		return Result{}, err
	}
	res := out.(Result)
	logger.C(ctx).Debug().Int("tokens", len(res.ByToken)).Dur("latency", elapsed).Msg("inference ok")
	return res, nil
}

func (c *Client) call(ctx context.Context, text string) (Result, error) {
	var body request
	body.Input.Text = text
	buf, err := json.Marshal(body)
	if err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode inference request")
	}

	url := c.cfg.BaseURL + "/v2/" + c.cfg.EndpointID + "/runsync"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeUnknown, "build inference request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// keep the context error in the chain for the caller's switch
			return Result{}, ctx.Err()
		}
		return Result{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "inference request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Result{}, perr.Newf(perr.ErrorCodeUnavailable, "inference endpoint returned %s", resp.Status)
	}

	var r response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&r); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "invalid inference response")
	}
	if msg := strings.TrimSpace(r.Error); msg != "" {
		return Result{}, perr.New(perr.ErrorCodeUnavailable, msg)
	}
	if r.Status == statusFailed {
		return Result{}, perr.New(perr.ErrorCodeUnavailable, MsgJobFailed)
	}
	if r.Output == nil {
		return Result{}, perr.Newf(perr.ErrorCodeUnavailable, "inference job %s returned no output (status %q)", r.ID, r.Status)
	}
	if r.Output.ByToken == nil {
		r.Output.ByToken = []answerspan.TokenScore{}
	}
	return *r.Output, nil
}
