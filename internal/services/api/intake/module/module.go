// Package module wires the SMS gateway intake into the API using modkit
package module

import (
	"net/http"

	modkit "civicline/internal/modkit"
	"civicline/internal/modkit/httpkit"
	str "civicline/internal/platform/strings"
	complaintsdom "civicline/internal/services/api/complaints/domain"
	intakehttp "civicline/internal/services/api/intake/http"
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

	creator complaintsdom.CreatorPort
}

// New constructs the intake module. It has no repo of its own; the complaint
// creator port must be injected via modkit.WithPorts at composition time
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("intake"), modkit.WithPrefix("/twilio")},
		opts...,
	)...)

	creator, ok := b.Ports.(complaintsdom.CreatorPort)
	if !ok {
		panic("intake module requires a complaints creator port")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		creator:   creator,
	}
	m.ports = creator

	external := b.Register
	m.register = func(r httpkit.Router) {
		intakehttp.Register(r, m.creator)
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
