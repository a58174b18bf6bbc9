package domain

import (
	"context"

	"civicline/internal/modkit/repokit"
)

// ResolverPort resolves a contact to a citizen id, upserting on first sight.
// The caller supplies the queryer so resolution can join an open transaction
type ResolverPort interface {
	Resolve(ctx context.Context, q repokit.Queryer, in ResolveInput) (string, error)
}
