package services

import (
	"context"

	"github.com/SaiPhaniAnirudh/invoice-manager/types"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	ListByUser(ctx context.Context, userID int) ([]types.Client, error)
	GetOwned(ctx context.Context, userID, id int) (types.Client, error)
	Create(ctx context.Context, client types.Client) (types.Client, error)
	Delete(ctx context.Context, userID, id int) error
	ApplyInvoiceDelta(ctx context.Context, clientID, countDelta int, totalDelta float64) error
}

// ClientService encapsulates client use-cases and the aggregate bookkeeping
// driven by invoice lifecycle events.
type ClientService struct {
	repo ClientRepository
}

func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) List(ctx context.Context, userID int) ([]types.Client, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ClientService) GetOwned(ctx context.Context, userID, id int) (types.Client, error) {
	return s.repo.GetOwned(ctx, userID, id)
}

func (s *ClientService) Create(ctx context.Context, client types.Client) (types.Client, error) {
	return s.repo.Create(ctx, client)
}

// Delete removes an owned client. Invoices referencing the client are not
// cascade-deleted and keep their dangling clientId.
func (s *ClientService) Delete(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, userID, id)
}

// ApplyInvoiceCreated folds a newly created invoice into the owning client's
// aggregates. The client is matched by id only; if it no longer exists the
// call is a silent no-op.
func (s *ClientService) ApplyInvoiceCreated(ctx context.Context, clientID int, total float64) error {
	return s.repo.ApplyInvoiceDelta(ctx, clientID, 1, total)
}

// ApplyInvoiceDeleted reverses ApplyInvoiceCreated for a removed invoice.
func (s *ClientService) ApplyInvoiceDeleted(ctx context.Context, clientID int, total float64) error {
	return s.repo.ApplyInvoiceDelta(ctx, clientID, -1, -total)
}
