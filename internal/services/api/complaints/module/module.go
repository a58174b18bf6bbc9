// Package module wires complaints into the API using modkit
package module

import (
	"net/http"

	modkit "civicline/internal/modkit"
	"civicline/internal/modkit/httpkit"
	str "civicline/internal/platform/strings"
	complaintshttp "civicline/internal/services/api/complaints/http"
	complaintsrepo "civicline/internal/services/api/complaints/repo"
	complaintssvc "civicline/internal/services/api/complaints/service"
	citizensdom "civicline/internal/services/citizens/domain"
	citizensrepo "civicline/internal/services/citizens/repo"
	citizenssvc "civicline/internal/services/citizens/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc complaintssvc.Service
}

// New constructs a complaints module with the provided dependencies and options.
// The citizen resolver defaults to the in-tree citizens service; inject another
// with modkit.WithPorts when composing differently
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("complaints"), modkit.WithPrefix("/complaints")},
		opts...,
	)...)

	var resolver citizensdom.ResolverPort
	if p, ok := b.Ports.(citizensdom.ResolverPort); ok {
		resolver = p
	} else {
		resolver = citizenssvc.New(deps.PG, citizensrepo.NewPG())
	}

	repo := complaintsrepo.NewPG()
	svc := complaintssvc.New(deps.PG, repo, resolver)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptComplaintsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		complaintshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
