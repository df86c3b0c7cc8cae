package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/SaiPhaniAnirudh/invoice-manager/internal/services"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/store"
	"github.com/SaiPhaniAnirudh/invoice-manager/types"
	"github.com/go-chi/chi/v5"
)

// ClientHandler provides HTTP handlers for clients.
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler constructs a handler with the provided service.
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRouter registers client routes on the given router. All routes
// require the auth middleware applied by the caller.
func ClientRouter(r chi.Router, clientService *services.ClientService) {
	handler := NewClientHandler(clientService)

	r.Get("/", handler.ListClients)
	r.Post("/", handler.CreateClient)
	r.Delete("/{clientID}", handler.DeleteClient)
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	clients, err := h.clientService.List(r.Context(), userID)
	if err != nil {
		log.Printf("list clients: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}

	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ClientUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	fields := fieldErrors{}
	req.Name = fields.requireString("name", req.Name)
	req.Email = fields.requireEmail("email", req.Email)
	req.Address = fields.requireString("address", req.Address)
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	client, err := h.clientService.Create(r.Context(), types.Client{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		log.Printf("create client: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create client")
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	clientID, err := parseIDParam(r, "clientID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := h.clientService.Delete(r.Context(), userID, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		log.Printf("delete client %d: %v", clientID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClientUpsertRequest is the create-client payload.
type ClientUpsertRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func parseIDParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
