package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
)

type DashboardProvider interface {
	GetOverview(ctx context.Context, now time.Time) services.DashboardOverview
}

type DashboardHandler struct {
	service DashboardProvider
}

func NewDashboardHandler(service DashboardProvider) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetOverview always answers 200; sources that could not be read are
// reported as zeroes rather than failing the whole dashboard.
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview := h.service.GetOverview(r.Context(), time.Now())
	writeSuccess(w, http.StatusOK, "", overview)
}
