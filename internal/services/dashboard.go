package services

import (
	"context"

	"github.com/SaiPhaniAnirudh/invoice-manager/types"
)

// DashboardService computes the read-side aggregate view for one user. It
// holds no state of its own: every call recomputes from the current client
// and invoice snapshots.
type DashboardService struct {
	clients  ClientRepository
	invoices InvoiceRepository
}

func NewDashboardService(clients ClientRepository, invoices InvoiceRepository) *DashboardService {
	return &DashboardService{clients: clients, invoices: invoices}
}

func (s *DashboardService) Summary(ctx context.Context, userID int) (types.Dashboard, error) {
	clients, err := s.clients.ListByUser(ctx, userID)
	if err != nil {
		return types.Dashboard{}, err
	}
	invoices, err := s.invoices.ListByUser(ctx, userID)
	if err != nil {
		return types.Dashboard{}, err
	}

	dashboard := types.Dashboard{
		TotalClients:  len(clients),
		TotalInvoices: len(invoices),
		Clients:       make([]types.ClientSummary, 0, len(clients)),
	}
	for _, invoice := range invoices {
		dashboard.TotalTax += invoice.TaxAmount
		dashboard.TotalRevenue += invoice.Total
	}
	for _, client := range clients {
		dashboard.Clients = append(dashboard.Clients, types.ClientSummary{
			Name:         client.Name,
			Email:        client.Email,
			InvoiceCount: client.InvoiceCount,
			TotalPaid:    client.TotalPaid,
		})
	}
	return dashboard, nil
}
