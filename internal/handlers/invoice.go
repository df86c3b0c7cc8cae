package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/SaiPhaniAnirudh/invoice-manager/internal/services"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/store"
	"github.com/SaiPhaniAnirudh/invoice-manager/types"
	"github.com/go-chi/chi/v5"
)

// InvoiceHandler provides HTTP handlers for invoices.
type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

// NewInvoiceHandler constructs a handler with the provided service.
func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// InvoiceRouter registers invoice routes on the given router. All routes
// require the auth middleware applied by the caller.
func InvoiceRouter(r chi.Router, invoiceService *services.InvoiceService) {
	handler := NewInvoiceHandler(invoiceService)

	r.Get("/", handler.ListInvoices)
	r.Post("/", handler.CreateInvoice)
	r.Delete("/{invoiceID}", handler.DeleteInvoice)
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	invoices, err := h.invoiceService.List(r.Context(), userID)
	if err != nil {
		log.Printf("list invoices: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}

	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req InvoiceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	fields := req.validate()
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	invoice, err := h.invoiceService.Create(r.Context(), types.Invoice{
		UserID:            userID,
		ClientID:          req.ClientID,
		FreelancerName:    req.FreelancerName,
		FreelancerEmail:   req.FreelancerEmail,
		FreelancerAddress: req.FreelancerAddress,
		TaxPercent:        req.TaxPercent,
		TaxAmount:         req.TaxAmount,
		LineItems:         req.LineItems,
		Total:             req.Total,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		log.Printf("create invoice: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create invoice")
		return
	}

	writeJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	invoiceID, err := parseIDParam(r, "invoiceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	if err := h.invoiceService.Delete(r.Context(), userID, invoiceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		log.Printf("delete invoice %d: %v", invoiceID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete invoice")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// InvoiceCreateRequest is the create-invoice payload.
type InvoiceCreateRequest struct {
	ClientID          int              `json:"clientId"`
	FreelancerName    string           `json:"freelancerName"`
	FreelancerEmail   string           `json:"freelancerEmail"`
	FreelancerAddress string           `json:"freelancerAddress"`
	TaxPercent        float64          `json:"taxPercent"`
	TaxAmount         float64          `json:"taxAmount"`
	LineItems         []types.LineItem `json:"lineItems"`
	Total             float64          `json:"total"`
}

func (req *InvoiceCreateRequest) validate() fieldErrors {
	fields := fieldErrors{}

	if req.ClientID < 1 {
		fields["clientId"] = "is required"
	}
	req.FreelancerName = fields.requireString("freelancerName", req.FreelancerName)
	req.FreelancerEmail = fields.requireEmail("freelancerEmail", req.FreelancerEmail)
	req.FreelancerAddress = fields.requireString("freelancerAddress", req.FreelancerAddress)

	if req.TaxPercent < 0 || req.TaxPercent > 100 {
		fields["taxPercent"] = "must be between 0 and 100"
	}
	fields.requireNonNegative("taxAmount", req.TaxAmount)
	fields.requireNonNegative("total", req.Total)

	if len(req.LineItems) == 0 {
		fields["lineItems"] = "must not be empty"
	}
	for i, item := range req.LineItems {
		if item.Description == "" {
			fields[fmt.Sprintf("lineItems[%d].description", i)] = "is required"
		}
		if item.Quantity <= 0 {
			fields[fmt.Sprintf("lineItems[%d].quantity", i)] = "must be positive"
		}
		if item.Rate < 0 {
			fields[fmt.Sprintf("lineItems[%d].rate", i)] = "must not be negative"
		}
	}

	return fields
}
