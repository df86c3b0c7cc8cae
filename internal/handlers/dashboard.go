package handlers

import (
	"log"
	"net/http"

	"github.com/SaiPhaniAnirudh/invoice-manager/internal/services"
	"github.com/go-chi/chi/v5"
)

// DashboardHandler serves the aggregate dashboard view.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler constructs a handler with the provided service.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardRouter registers the dashboard route on the given router. The
// route requires the auth middleware applied by the caller.
func DashboardRouter(r chi.Router, dashboardService *services.DashboardService) {
	handler := NewDashboardHandler(dashboardService)

	r.Get("/", handler.GetDashboard)
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dashboard, err := h.dashboardService.Summary(r.Context(), userID)
	if err != nil {
		log.Printf("dashboard for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
