package types

import "time"

// Client represents a billable client owned by a single user.
// It carries two denormalized aggregates (InvoiceCount, TotalPaid) that are
// updated incrementally as invoices referencing the client are created and
// deleted, never recomputed from the invoice collection.
type Client struct {
	// ID is the unique identifier of the client.
	ID int `json:"id"`

	// UserID is the identifier of the owning user. Every read and write is
	// scoped to the owner; cross-user access is rejected.
	UserID int `json:"userId"`

	// Name is the client's display name.
	Name string `json:"name"`

	// Email is the client's contact email address.
	Email string `json:"email"`

	// Address is the client's postal address.
	Address string `json:"address"`

	// InvoiceCount is the number of non-deleted invoices referencing this
	// client. Maintained incrementally; can drift if an invoice write is
	// interrupted before the matching aggregate update lands.
	InvoiceCount int `json:"invoiceCount"`

	// TotalPaid is the sum of the Total fields of non-deleted invoices
	// referencing this client. Same drift caveat as InvoiceCount.
	TotalPaid float64 `json:"totalPaid"`

	// CreatedAt is the timestamp when the client was created.
	CreatedAt time.Time `json:"createdAt"`
}

// GetID implements store.Record.
func (c Client) GetID() int { return c.ID }

// ClientSummary is the per-client slice of the dashboard payload.
type ClientSummary struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	InvoiceCount int     `json:"invoiceCount"`
	TotalPaid    float64 `json:"totalPaid"`
}
