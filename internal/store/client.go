package store

import (
	"context"
	"time"

	"github.com/SaiPhaniAnirudh/invoice-manager/types"
)

const clientsCollection = "clients"

// ClientRepository handles persistence for clients.
type ClientRepository struct {
	clients *Collection[types.Client]
}

func NewClientRepository(dataDir string) *ClientRepository {
	return &ClientRepository{clients: NewCollection[types.Client](dataDir, clientsCollection)}
}

// ListByUser returns all clients owned by userID, in insertion order.
func (r *ClientRepository) ListByUser(ctx context.Context, userID int) ([]types.Client, error) {
	clients, err := r.clients.All()
	if err != nil {
		return nil, err
	}
	owned := make([]types.Client, 0, len(clients))
	for _, client := range clients {
		if client.UserID == userID {
			owned = append(owned, client)
		}
	}
	return owned, nil
}

// GetOwned returns the client with the given id if it belongs to userID.
func (r *ClientRepository) GetOwned(ctx context.Context, userID, id int) (types.Client, error) {
	clients, err := r.clients.All()
	if err != nil {
		return types.Client{}, err
	}
	for _, client := range clients {
		if client.ID == id && client.UserID == userID {
			return client, nil
		}
	}
	return types.Client{}, ErrNotFound
}

// Create appends a new client with zeroed aggregates.
func (r *ClientRepository) Create(ctx context.Context, client types.Client) (types.Client, error) {
	client.InvoiceCount = 0
	client.TotalPaid = 0
	client.CreatedAt = time.Now().UTC()

	err := r.clients.Mutate(func(s *Snapshot[types.Client]) error {
		client.ID = s.Allocate()
		s.Records = append(s.Records, client)
		return nil
	})
	if err != nil {
		return types.Client{}, err
	}
	return client, nil
}

// Delete removes the client with the given id if it belongs to userID.
// Invoices referencing the client are left in place.
func (r *ClientRepository) Delete(ctx context.Context, userID, id int) error {
	return r.clients.Mutate(func(s *Snapshot[types.Client]) error {
		for i, client := range s.Records {
			if client.ID == id && client.UserID == userID {
				s.Records = append(s.Records[:i], s.Records[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// ApplyInvoiceDelta adjusts the stored aggregates of the client matching
// clientID by countDelta invoices and totalDelta revenue. The match is by
// clientID alone, with no owner filter, and a missing client is a silent
// no-op. Deltas are applied as given and never clamped, so out-of-order or
// duplicated calls can drive the aggregates negative.
func (r *ClientRepository) ApplyInvoiceDelta(ctx context.Context, clientID, countDelta int, totalDelta float64) error {
	return r.clients.Mutate(func(s *Snapshot[types.Client]) error {
		for i := range s.Records {
			if s.Records[i].ID == clientID {
				s.Records[i].InvoiceCount += countDelta
				s.Records[i].TotalPaid += totalDelta
				return nil
			}
		}
		return nil
	})
}

// Path returns the snapshot file backing the collection.
func (r *ClientRepository) Path() string {
	return r.clients.Path()
}
