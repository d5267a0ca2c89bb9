package store

import (
	"time"

	"slopmeter/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	MinConns    int32
	MaxConnIdle time.Duration
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* into a Config
func ConfigFromEnv(appName string) Config {
	root := config.New()
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", true),
			URL:            pg.MayString("DBURL", ""),
			MaxConns:       int32(pg.MayIntIn("MAX_CONNS", 8, 1, 512)),
			MinConns:       int32(pg.MayIntIn("MIN_CONNS", 0, 0, 512)),
			MaxConnIdle:    pg.MayDuration("MAX_CONN_IDLE", 5*time.Minute),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 200),
			ConnectRetries: pg.MayIntIn("CONNECT_RETRIES", 20, 1, 100),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
			URL:     ch.MayString("DBURL", ""),
		},
	}
	if cfg.PG.URL == "" {
		cfg.PG.Enabled = false
	}
	if cfg.CH.URL == "" {
		cfg.CH.Enabled = false
	}
	return cfg
}
