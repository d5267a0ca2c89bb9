// Command slopmeter-migrate applies the embedded schema
//
//	slopmeter-migrate up
//	slopmeter-migrate down -steps 1
//	slopmeter-migrate version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"slopmeter/internal/migrations"
	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/store"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Named("migrate")

	steps := flag.Int("steps", 1, "migrations to roll back with down")
	withCH := flag.Bool("clickhouse", true, "also apply clickhouse DDL on up when SERVICE_CLICKHOUSE_DBURL is set")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	dsn := config.New().Prefix("SERVICE_PGSQL_").MustString("DBURL")

	var (
		st  migrations.Status
		err error
	)
	switch cmd := flag.Arg(0); cmd {
	case "up":
		st, err = migrations.Up(dsn)
	case "down":
		st, err = migrations.Down(dsn, *steps)
	case "version":
		st, err = migrations.Version(dsn)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("postgres migration failed")
	}
	l.Info().Uint("version", st.Version).Bool("dirty", st.Dirty).Bool("changed", st.Changed).Msg("postgres schema")

	if flag.Arg(0) != "up" || !*withCH {
		return
	}
	applyClickhouse(l)
}

func applyClickhouse(l *logger.Logger) {
	cfg := store.ConfigFromEnv("migrate")
	cfg.PG.Enabled = false
	if !cfg.CH.Enabled {
		l.Info().Msg("clickhouse disabled, skipping")
		return
	}

	ctx := context.Background()
	s, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() { _ = s.Close(ctx) }()

	n, err := migrations.ApplyClickhouse(ctx, s.CH)
	if err != nil {
		l.Fatal().Err(err).Msg("clickhouse migration failed")
	}
	l.Info().Int("statements", n).Msg("clickhouse schema applied")
}
