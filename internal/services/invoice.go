package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"

	"github.com/SaiPhaniAnirudh/invoice-manager/types"
)

// Event channels published on invoice lifecycle transitions.
const (
	ChannelInvoiceCreated = "invoice.created"
	ChannelInvoiceDeleted = "invoice.deleted"
)

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	ListByUser(ctx context.Context, userID int) ([]types.Invoice, error)
	Create(ctx context.Context, invoice types.Invoice) (types.Invoice, error)
	Delete(ctx context.Context, userID, id int) (types.Invoice, error)
	Reinsert(ctx context.Context, invoice types.Invoice) error
	Remove(ctx context.Context, id int) error
}

// EventPublisher pushes invoice lifecycle events to an external broker.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// InvoiceEvent is the broker payload for invoice lifecycle events.
type InvoiceEvent struct {
	InvoiceID int     `json:"invoiceId"`
	ClientID  int     `json:"clientId"`
	UserID    int     `json:"userId"`
	Total     float64 `json:"total"`
}

// InvoiceService encapsulates invoice use-cases. Invoice writes and the
// matching client aggregate updates run under one service-wide mutex, so two
// in-flight requests cannot interleave between the two collection writes. If
// the aggregate write fails, the invoice write is compensated so the two
// snapshots stay consistent; a process crash between the writes can still
// leave the aggregates drifted.
type InvoiceService struct {
	repo    InvoiceRepository
	clients *ClientService
	events  EventPublisher

	mu sync.Mutex
}

func NewInvoiceService(repo InvoiceRepository, clients *ClientService, events EventPublisher) *InvoiceService {
	return &InvoiceService{
		repo:    repo,
		clients: clients,
		events:  events,
	}
}

func (s *InvoiceService) List(ctx context.Context, userID int) ([]types.Invoice, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create validates that the referenced client exists and belongs to the
// caller, appends the invoice, and folds its total into the client
// aggregates. Returns store.ErrNotFound when the client reference does not
// resolve for this user.
func (s *InvoiceService) Create(ctx context.Context, invoice types.Invoice) (types.Invoice, error) {
	if _, err := s.clients.GetOwned(ctx, invoice.UserID, invoice.ClientID); err != nil {
		return types.Invoice{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		return types.Invoice{}, err
	}

	if err := s.clients.ApplyInvoiceCreated(ctx, created.ClientID, created.Total); err != nil {
		if rmErr := s.repo.Remove(ctx, created.ID); rmErr != nil {
			log.Printf("invoice %d: aggregate update and compensation both failed: %v, %v", created.ID, err, rmErr)
		}
		return types.Invoice{}, err
	}

	s.publish(ctx, ChannelInvoiceCreated, created)
	return created, nil
}

// Delete removes an owned invoice and reverses the client aggregates.
func (s *InvoiceService) Delete(ctx context.Context, userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.clients.ApplyInvoiceDeleted(ctx, removed.ClientID, removed.Total); err != nil {
		if insErr := s.repo.Reinsert(ctx, removed); insErr != nil {
			log.Printf("invoice %d: aggregate reversal and compensation both failed: %v, %v", removed.ID, err, insErr)
		}
		return err
	}

	s.publish(ctx, ChannelInvoiceDeleted, removed)
	return nil
}

// publish emits a lifecycle event when a broker is configured. Publish
// failures are logged and never fail the request.
func (s *InvoiceService) publish(ctx context.Context, channel string, invoice types.Invoice) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(InvoiceEvent{
		InvoiceID: invoice.ID,
		ClientID:  invoice.ClientID,
		UserID:    invoice.UserID,
		Total:     invoice.Total,
	})
	if err != nil {
		log.Printf("encode %s event: %v", channel, err)
		return
	}

	attrs := map[string]string{"userId": strconv.Itoa(invoice.UserID)}
	if _, err := s.events.Publish(ctx, channel, payload, attrs); err != nil {
		log.Printf("publish %s event for invoice %d: %v", channel, invoice.ID, err)
	}
}
