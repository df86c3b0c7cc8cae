package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SaiPhaniAnirudh/invoice-manager/internal/services"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/store"
	"github.com/SaiPhaniAnirudh/invoice-manager/types"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	dir := t.TempDir()

	clientService := services.NewClientService(store.NewClientRepository(dir))
	invoiceService := services.NewInvoiceService(store.NewInvoiceRepository(dir), clientService, nil)

	router := chi.NewRouter()
	router.Route("/clients", func(r chi.Router) {
		r.Use(RequireAuth(testSecret))
		ClientRouter(r, clientService)
	})
	router.Route("/invoices", func(r chi.Router) {
		r.Use(RequireAuth(testSecret))
		InvoiceRouter(r, invoiceService)
	})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, userID int, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID > 0 {
		tok, err := IssueToken(userID, "u@example.com", []byte(testSecret), time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateClient(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/clients/", 1, ClientUpsertRequest{
		Name:    "Acme",
		Email:   "a@x.com",
		Address: "1 Rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var client types.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	assert.Equal(t, 1, client.ID)
	assert.Equal(t, 1, client.UserID)
	assert.Equal(t, 0, client.InvoiceCount)
}

func TestCreateClient_ValidationDetail(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/clients/", 1, ClientUpsertRequest{
		Name:  "",
		Email: "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "address")
}

func TestCreateClient_Unauthorized(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/clients/", 0, ClientUpsertRequest{
		Name:    "Acme",
		Email:   "a@x.com",
		Address: "1 Rd",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteClient_NotFoundForForeignOwner(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/clients/", 1, ClientUpsertRequest{
		Name:    "Acme",
		Email:   "a@x.com",
		Address: "1 Rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/clients/1", 2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/clients/1", 1, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateInvoice_ValidationDetail(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/invoices/", 1, InvoiceCreateRequest{
		ClientID:          1,
		FreelancerName:    "Jane",
		FreelancerEmail:   "jane@example.com",
		FreelancerAddress: "2 Rd",
		TaxPercent:        150,
		Total:             -5,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "taxPercent")
	assert.Contains(t, resp.Fields, "total")
	assert.Contains(t, resp.Fields, "lineItems")
}

func TestCreateInvoice_UnknownClient(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/invoices/", 1, InvoiceCreateRequest{
		ClientID:          7,
		FreelancerName:    "Jane",
		FreelancerEmail:   "jane@example.com",
		FreelancerAddress: "2 Rd",
		TaxPercent:        10,
		TaxAmount:         10,
		Total:             100,
		LineItems:         []types.LineItem{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoiceFlowThroughHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/clients/", 1, ClientUpsertRequest{
		Name:    "Acme",
		Email:   "a@x.com",
		Address: "1 Rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/invoices/", 1, InvoiceCreateRequest{
		ClientID:          1,
		FreelancerName:    "Jane",
		FreelancerEmail:   "jane@example.com",
		FreelancerAddress: "2 Rd",
		TaxPercent:        10,
		TaxAmount:         10,
		Total:             100,
		LineItems:         []types.LineItem{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/clients/", 1, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var clients []types.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, 1, clients[0].InvoiceCount)
	assert.Equal(t, 100.0, clients[0].TotalPaid)

	rec = doJSON(t, router, http.MethodDelete, "/invoices/1", 1, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/invoices/1", 1, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
