// Package api provides the HTTP API for the application
package api

import (
	"civicline/internal/platform/config"
	"civicline/internal/platform/logger"
	phttp "civicline/internal/platform/net/http"
	"civicline/internal/platform/store"

	"civicline/internal/modkit"
	"civicline/internal/modkit/httpkit"
	"civicline/internal/modkit/module"
	"civicline/internal/modkit/swaggerkit"

	complaintsdom "civicline/internal/services/api/complaints/domain"
	complaintsmod "civicline/internal/services/api/complaints/module"
	intakemod "civicline/internal/services/api/intake/module"
	metamod "civicline/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Construct the complaints module first and extract its creator port
	complaints := complaintsmod.New(deps)
	creator := module.MustPortsOf[complaintsdom.CreatorPort](complaints)

	// The webhook intake has no repo of its own; it files complaints
	// through the same creator the structured API uses
	intake := intakemod.New(deps, modkit.WithPorts(creator))

	mods := []module.Module{
		metamod.New(deps),
		complaints,
		intake,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
