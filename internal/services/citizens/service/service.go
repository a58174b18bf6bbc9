// Package service contains the citizen identity resolution workflow
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"civicline/internal/modkit/repokit"
	perr "civicline/internal/platform/errors"
	"civicline/internal/services/citizens/domain"
	"civicline/internal/services/citizens/repo"
)

// Service defines the service contract for citizen resolution
type Service interface{ domain.ResolverPort }

// Svc implements the Service interface
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new citizens service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if binder == nil {
		panic("citizens.Service requires a non nil Repo binder")
	}
	return &Svc{binder: binder, db: db}
}

// Resolve upserts a citizen keyed on phone and returns the row id.
// When q is nil the service falls back to its own db handle; pass the tx
// queryer to make resolution part of an open transaction
func (s *Svc) Resolve(ctx context.Context, q repokit.Queryer, in domain.ResolveInput) (string, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return "", perr.Validationf("phone_number is required")
	}
	if q == nil {
		q = s.db
	}
	r := s.binder.Bind(repokit.RequireQueryer(q))
	return r.Upsert(
		ctx,
		uuid.NewString(),
		phone,
		strings.TrimSpace(in.Name),
		domain.CanonicalLanguage(in.PreferredLanguage),
	)
}
