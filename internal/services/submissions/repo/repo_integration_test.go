//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"slopmeter/internal/core/canon"
	"slopmeter/internal/migrations"
	perr "slopmeter/internal/platform/errors"
	"slopmeter/internal/platform/store"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "slopmeter",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/slopmeter?sslmode=disable", host, port.Port())
}

func TestRepo_Integration(t *testing.T) {
	dsn := startPostgres(t)

	st, err := migrations.Up(dsn)
	if err != nil || !st.Changed || st.Dirty || st.Version != 1 {
		t.Fatalf("migrate up = %+v, %v", st, err)
	}
	if st, err = migrations.Up(dsn); err != nil || st.Changed {
		t.Fatalf("second up = %+v, %v", st, err)
	}

	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 8}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	r := NewPG().Bind(s.PG)

	ins := func(text string, p float64, q int) {
		t.Helper()
		if _, _, err := r.Insert(ctx, canon.Hash(q, text), text, p, q, 0); err != nil {
			t.Fatalf("insert %q: %v", text, err)
		}
	}
	ins("ninety", 90, 0)
	ins("hundred", 100, 0)
	ins("one ten", 110, 0)
	ins("one eleven", 111, 0)
	ins("other question", 100, 1)
	ins("hundred", 100, 1)

	// racing writers of one text end with one row and one winner
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[int64]int{}
		won int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			row, inserted, err := r.Insert(ctx, canon.Hash(0, "same text"), "same text", 50, 0, 0)
			if err != nil {
				t.Errorf("racing insert: %v", err)
				return
			}
			mu.Lock()
			ids[row.ID]++
			if inserted {
				won++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(ids) != 1 || won != 1 {
		t.Fatalf("ids = %v winners = %d", ids, won)
	}

	all, err := r.ByQuestion(ctx, 0)
	if err != nil || len(all) != 5 || all[0].Text != "same text" || all[4].Perplexity != 111 {
		t.Fatalf("ByQuestion = %+v, %v", all, err)
	}

	if other, err := r.ByQuestion(ctx, 1); err != nil || len(other) != 2 {
		t.Fatalf("ByQuestion(1) = %+v, %v", other, err)
	}

	near, err := r.InRange(ctx, 0, 90, 110)
	if err != nil || len(near) != 3 {
		t.Fatalf("InRange = %+v, %v", near, err)
	}

	got, err := r.ByHash(ctx, canon.Hash(0, "hundred"))
	if err != nil || got.Perplexity != 100 || got.CreatedAt.IsZero() {
		t.Fatalf("ByHash = %+v, %v", got, err)
	}
	if _, err := r.ByHash(ctx, canon.Hash(0, "missing")); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("miss = %v", err)
	}

	if st, err := migrations.Down(dsn, 1); err != nil || st.Version != 0 {
		t.Fatalf("down = %+v, %v", st, err)
	}
}
