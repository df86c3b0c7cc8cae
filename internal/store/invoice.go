package store

import (
	"context"
	"time"

	"github.com/SaiPhaniAnirudh/invoice-manager/types"
)

const invoicesCollection = "invoices"

// InvoiceRepository handles persistence for invoices.
type InvoiceRepository struct {
	invoices *Collection[types.Invoice]
}

func NewInvoiceRepository(dataDir string) *InvoiceRepository {
	return &InvoiceRepository{invoices: NewCollection[types.Invoice](dataDir, invoicesCollection)}
}

// ListByUser returns all invoices owned by userID, in insertion order.
func (r *InvoiceRepository) ListByUser(ctx context.Context, userID int) ([]types.Invoice, error) {
	invoices, err := r.invoices.All()
	if err != nil {
		return nil, err
	}
	owned := make([]types.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice.UserID == userID {
			owned = append(owned, invoice)
		}
	}
	return owned, nil
}

// Create appends a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice types.Invoice) (types.Invoice, error) {
	invoice.CreatedAt = time.Now().UTC()

	err := r.invoices.Mutate(func(s *Snapshot[types.Invoice]) error {
		invoice.ID = s.Allocate()
		s.Records = append(s.Records, invoice)
		return nil
	})
	if err != nil {
		return types.Invoice{}, err
	}
	return invoice, nil
}

// Delete removes the invoice with the given id if it belongs to userID and
// returns the removed record so the caller can reverse the client aggregates.
func (r *InvoiceRepository) Delete(ctx context.Context, userID, id int) (types.Invoice, error) {
	var removed types.Invoice
	err := r.invoices.Mutate(func(s *Snapshot[types.Invoice]) error {
		for i, invoice := range s.Records {
			if invoice.ID == id && invoice.UserID == userID {
				removed = invoice
				s.Records = append(s.Records[:i], s.Records[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return types.Invoice{}, err
	}
	return removed, nil
}

// Reinsert puts a previously removed invoice back, keeping its original id.
// Used to compensate when the aggregate update following a delete fails.
func (r *InvoiceRepository) Reinsert(ctx context.Context, invoice types.Invoice) error {
	return r.invoices.Mutate(func(s *Snapshot[types.Invoice]) error {
		s.Records = append(s.Records, invoice)
		return nil
	})
}

// Remove deletes an invoice by id regardless of owner. Used to compensate
// when the aggregate update following a create fails.
func (r *InvoiceRepository) Remove(ctx context.Context, id int) error {
	return r.invoices.Mutate(func(s *Snapshot[types.Invoice]) error {
		for i, invoice := range s.Records {
			if invoice.ID == id {
				s.Records = append(s.Records[:i], s.Records[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// Path returns the snapshot file backing the collection.
func (r *InvoiceRepository) Path() string {
	return r.invoices.Path()
}
