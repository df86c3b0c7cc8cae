package types

import "time"

// Invoice represents a single issued invoice owned by a user and referencing
// one of that user's clients.
type Invoice struct {
	// ID is the unique identifier of the invoice.
	ID int `json:"id"`

	// UserID is the identifier of the owning user.
	UserID int `json:"userId"`

	// ClientID references the client this invoice was issued to. Deleting the
	// client does not cascade here, so the reference can dangle.
	ClientID int `json:"clientId"`

	// FreelancerName is the issuer's name as printed on the invoice.
	FreelancerName string `json:"freelancerName"`

	// FreelancerEmail is the issuer's contact email.
	FreelancerEmail string `json:"freelancerEmail"`

	// FreelancerAddress is the issuer's postal address.
	FreelancerAddress string `json:"freelancerAddress"`

	// TaxPercent is the applied tax rate, in the range [0,100].
	TaxPercent float64 `json:"taxPercent"`

	// TaxAmount is the absolute tax charged on this invoice.
	TaxAmount float64 `json:"taxAmount"`

	// LineItems is the ordered list of billed items. Never empty.
	LineItems []LineItem `json:"lineItems"`

	// Total is the final invoiced amount, reflected into the owning client's
	// TotalPaid aggregate.
	Total float64 `json:"total"`

	// CreatedAt is the timestamp when the invoice was created.
	CreatedAt time.Time `json:"createdAt"`
}

// GetID implements store.Record.
func (i Invoice) GetID() int { return i.ID }

// LineItem is a single billed row on an invoice.
type LineItem struct {
	// Description is the human-readable label of the work billed.
	Description string `json:"description"`

	// Quantity is the number of units billed.
	Quantity float64 `json:"quantity"`

	// Rate is the price per unit.
	Rate float64 `json:"rate"`
}
