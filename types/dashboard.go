package types

// Dashboard is the read-side aggregate view over one user's clients and
// invoices. It is recomputed from the current snapshots on every request,
// never cached.
type Dashboard struct {
	// TotalClients is the number of clients owned by the user.
	TotalClients int `json:"totalClients"`

	// TotalInvoices is the number of invoices owned by the user.
	TotalInvoices int `json:"totalInvoices"`

	// TotalTax is the sum of TaxAmount over the user's invoices.
	TotalTax float64 `json:"totalTax"`

	// TotalRevenue is the sum of Total over the user's invoices.
	TotalRevenue float64 `json:"totalRevenue"`

	// Clients summarizes each client with its stored aggregates.
	Clients []ClientSummary `json:"clients"`
}
