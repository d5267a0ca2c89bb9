// Package api provides the HTTP API for the application
package api

import (
	"errors"

	"slopmeter/internal/adapters/inference"
	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/logger"
	"slopmeter/internal/platform/metrics"
	phttp "slopmeter/internal/platform/net/http"
	"slopmeter/internal/platform/net/middleware"

	"slopmeter/internal/modkit"
	"slopmeter/internal/modkit/httpkit"
	"slopmeter/internal/modkit/module"
	"slopmeter/internal/modkit/swaggerkit"

	analyzemod "slopmeter/internal/services/api/analyze/module"
	metamod "slopmeter/internal/services/api/meta/module"
	readmod "slopmeter/internal/services/api/submissions/module"
	"slopmeter/internal/services/audit"
	"slopmeter/internal/services/gate"
	subdom "slopmeter/internal/services/submissions/domain"
	submod "slopmeter/internal/services/submissions/module"
)

// Options are the API options
// Scorer and Gate are built from Config when nil
type Options struct {
	Config         config.Conf
	Deps           modkit.Deps
	Audit          audit.Sink
	Scorer         inference.Scorer
	Gate           *gate.Built
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := opt.Deps.Normalize()
	if deps.PG == nil {
		return errors.New("api: postgres is required")
	}
	log := logger.Named("api")

	g := opt.Gate
	if g == nil {
		built, err := gate.New(gate.FromConfig(opt.Config))
		if err != nil {
			return err
		}
		g = &built
	}

	scorer := opt.Scorer
	if scorer == nil {
		scorer = inference.New(inference.ConfigFromEnv())
	}
	if !scorer.Configured() {
		log.Warn().Msg("inference endpoint not configured, /analyze and /perplexity will answer 503")
	}

	// the store module has no routes, it owns the ports the api modules read through
	store := submod.New(deps)
	storePort := module.MustPortsOf[subdom.StorePort](store)
	distPort := module.MustPortsOf[subdom.DistributionPort](store)

	mods := []module.Module{
		metamod.New(deps),
		analyzemod.New(deps, modkit.WithPorts(analyzemod.Ports{
			Gate:   g.Gate,
			Scorer: scorer,
			Store:  storePort,
			Audit:  opt.Audit,
		})),
		readmod.New(deps, modkit.WithPorts(readmod.Ports{
			Store:        storePort,
			Distribution: distPort,
		})),
	}

	r.Handle("/metrics", metrics.Handler())
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := append(httpkit.CommonStack(httpkit.StackOptionsFromEnv(opt.Config.Prefix("CORE_API_"))), middleware.StripSlashes())
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
	return nil
}
