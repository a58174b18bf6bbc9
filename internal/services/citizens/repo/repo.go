// Package repo provides postgres access for citizen identities
package repo

import (
	"context"

	"civicline/internal/modkit/repokit"
	perr "civicline/internal/platform/errors"
	"civicline/internal/platform/store"
	str "civicline/internal/platform/strings"
)

// Repo defines the repository contract for citizen identities
type Repo interface {
	Upsert(ctx context.Context, id, phone, name, preferredLanguage string) (string, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Upsert inserts or sparsely updates a citizen keyed on phone_number.
// Blank name/language leave existing values untouched; returns the row id
func (r *queries) Upsert(ctx context.Context, id, phone, name, preferredLanguage string) (string, error) {
	const sql = `
insert into citizens (id, phone_number, name, preferred_language)
values ($1, $2, $3, $4)
on conflict (phone_number) do update
set name               = coalesce(excluded.name, citizens.name),
    preferred_language = coalesce(excluded.preferred_language, citizens.preferred_language),
    updated_at         = now()
returning id
`
	out, err := store.Scalar[string](ctx, r.q, sql, id, phone, str.SQLNull(name), str.SQLNull(preferredLanguage))
	if err != nil {
		return "", perr.FromPostgresf(err, "citizens upsert")
	}
	return out, nil
}
