// @title         slopmeter API
// @version       1.0
// @description   Scores how predictable a short answer is against everyone else's answers to the same prompt

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"slopmeter/internal/modkit"
	"slopmeter/internal/platform/cache"
	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/logger"
	phttp "slopmeter/internal/platform/net/http"
	"slopmeter/internal/platform/store"

	"slopmeter/internal/services/api"
	"slopmeter/internal/services/audit"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	st, err := store.Open(ctx, store.ConfigFromEnv("api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		l.Warn().Err(err).Msg("store not healthy at startup")
	}

	c, err := cache.Open(ctx, cache.ConfigFromEnv())
	if err != nil {
		l.Panic().Err(err).Msg("cache.Open failed")
	}
	defer func() { _ = c.Close() }()

	deps := modkit.FromStore(*l, root, st, c)

	// audit runs on its own context so the final flush happens after the server drained
	auditCtx, stopAudit := context.WithCancel(context.Background())
	am := audit.New(deps)
	auditDone := am.Start(auditCtx)

	srv := phttp.NewServer(apiCfg)
	err = api.Mount(srv.Router(), api.Options{
		Config:         root,
		Deps:           deps,
		Audit:          am.Sink(),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}

	stopAudit()
	select {
	case <-auditDone:
	case <-time.After(10 * time.Second):
		l.Warn().Msg("audit flush did not finish")
	}
}
