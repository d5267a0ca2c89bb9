package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/testkit"
)

func TestOpen_NoBackends(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{}, WithLogger(logger.Logger{}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("expected no seams, got %#v", s)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpen_OptionError(t *testing.T) {
	t.Parallel()

	bad := func(*Store) error { return errors.New("nope") }
	if _, err := Open(context.Background(), Config{}, bad); err == nil {
		t.Fatalf("expected option error")
	}
}

func TestOpen_WithClickhouseOption(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	s, err := Open(context.Background(), Config{}, WithClickhouse(ch))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.CH != ch {
		t.Fatalf("clickhouse seam not installed")
	}
}

func TestOpen_CHEnabledBadURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{CH: CHConfig{Enabled: true, URL: "::not a dsn"}})
	if err == nil || !strings.Contains(err.Error(), "clickhouse") {
		t.Fatalf("expected clickhouse error, got %v", err)
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var nilStore *Store
	if err := nilStore.Guard(ctx); err == nil {
		t.Fatalf("nil store should return error")
	}

	if err := (&Store{}).Guard(ctx); err != nil {
		t.Fatalf("empty store: %v", err)
	}

	s := &Store{
		PG: &fakeQuerier{pingErr: errors.New("pg down")},
		CH: &fakeCH{pingErr: errors.New("ch down")},
	}
	err := s.Guard(ctx)
	if err == nil {
		t.Fatalf("expected joined error")
	}
	testkit.MustContain(t, err.Error(), "pg: pg down")
	testkit.MustContain(t, err.Error(), "ch: ch down")

	healthy := &Store{PG: &fakeQuerier{}, CH: &fakeCH{}}
	if err := healthy.Guard(ctx); err != nil {
		t.Fatalf("healthy store: %v", err)
	}
}

func TestClose_JoinsErrors(t *testing.T) {
	t.Parallel()

	pg := &fakeQuerier{}
	s := &Store{PG: pg, CH: &fakeCH{closeErr: errors.New("ch close")}}
	err := s.Close(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ch close") {
		t.Fatalf("expected ch close error, got %v", err)
	}
	if !pg.closed {
		t.Fatalf("pg not closed")
	}

	var nilStore *Store
	if err := nilStore.Close(context.Background()); err != nil {
		t.Fatalf("nil store Close: %v", err)
	}
}

func TestRetryPing(t *testing.T) {
	testkit.Serial(t)

	var slept []time.Duration
	testkit.Swap(t, &sleep, func(d time.Duration) { slept = append(slept, d) })

	calls := 0
	err := retryPing(context.Background(), 3, time.Second, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("retryPing err=%v calls=%d", err, calls)
	}
	if len(slept) != 2 || slept[0] != backoffStart || slept[1] != 2*backoffStart {
		t.Fatalf("unexpected backoff %v", slept)
	}

	slept = nil
	err = retryPing(context.Background(), 2, time.Second, func(context.Context) error { return errors.New("down") })
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("expected exhaustion error, got %v", err)
	}
	if len(slept) != 1 {
		t.Fatalf("no sleep after the final attempt, got %v", slept)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = retryPing(ctx, 5, time.Second, func(context.Context) error { return errors.New("down") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	testkit.Env(t, map[string]string{
		"SERVICE_PGSQL_DBURL":        "postgres://u:p@h:5432/db",
		"SERVICE_PGSQL_MAX_CONNS":    "4",
		"SERVICE_PGSQL_LOG_SQL":      "true",
		"SERVICE_CLICKHOUSE_ENABLED": "true",
		"SERVICE_CLICKHOUSE_DBURL":   "",
	})

	cfg := ConfigFromEnv("api")
	if !cfg.PG.Enabled || cfg.PG.MaxConns != 4 || !cfg.PG.LogSQL {
		t.Fatalf("pg config not applied: %#v", cfg.PG)
	}
	if cfg.CH.Enabled {
		t.Fatalf("clickhouse without url must stay disabled")
	}
	if cfg.AppName != "api" {
		t.Fatalf("AppName=%q", cfg.AppName)
	}
}
