package domain

import "context"

// CreatorPort is the narrow creation surface other modules wire against
type CreatorPort interface {
	Create(ctx context.Context, in CreateInput) (Created, error)
}

// ServicePort defines the full service contract for complaints
type ServicePort interface {
	CreatorPort
	Get(ctx context.Context, complaintNo int64) (Aggregate, error)
	Remove(ctx context.Context, id string) (Removed, error)
}
