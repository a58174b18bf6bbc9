package module

import (
	"context"

	complaintsdom "civicline/internal/services/api/complaints/domain"
	complaintssvc "civicline/internal/services/api/complaints/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptComplaintsPort adapts the complaints service to the domain port interface
type adaptComplaintsPort struct{ svc complaintssvc.Service }

// Create implements the domain CreatorPort interface
func (a adaptComplaintsPort) Create(ctx context.Context, in complaintsdom.CreateInput) (complaintsdom.Created, error) {
	return a.svc.Create(ctx, in)
}

// Get implements the domain ServicePort interface
func (a adaptComplaintsPort) Get(ctx context.Context, complaintNo int64) (complaintsdom.Aggregate, error) {
	return a.svc.Get(ctx, complaintNo)
}

// Remove implements the domain ServicePort interface
func (a adaptComplaintsPort) Remove(ctx context.Context, id string) (complaintsdom.Removed, error) {
	return a.svc.Remove(ctx, id)
}
