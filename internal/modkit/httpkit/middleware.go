package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/metrics"
	"slopmeter/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowLog     time.Duration
	// MaxInFlight caps concurrent requests, 0 disables throttling
	MaxInFlight int
}

// StackOptionsFromEnv reads CORS_ORIGINS, REQUEST_TIMEOUT, SLOW_REQUEST and MAX_IN_FLIGHT from cfg
func StackOptionsFromEnv(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 90*time.Second),
		SlowLog:     cfg.MayDuration("SLOW_REQUEST", 5*time.Second),
		MaxInFlight: cfg.MayIntIn("MAX_IN_FLIGHT", 0, 0, 100000),
	}
}

// CommonStack returns the root middleware slice in mounting order
// request id comes first so every later layer can log it
// slash stripping is left to the api group, it would loop the swagger redirect
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 90 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowLog, Skip: []string{"/metrics", "/ping"}}),
		middleware.RecoverJSON,
		metrics.Middleware,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/ping"),
	}
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight, o.MaxInFlight, o.Timeout))
	}
	return append(stack, middleware.Timeout(o.Timeout))
}
