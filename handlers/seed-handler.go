package handlers

import (
	"context"
	"net/http"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
)

type Seeder interface {
	LoadSampleData(ctx context.Context) (*services.SeedCounts, error)
}

type SeedHandler struct {
	service Seeder
}

func NewSeedHandler(service Seeder) *SeedHandler {
	return &SeedHandler{service: service}
}

// LoadSampleData wipes the CRM collections (users excluded) and inserts the
// demo dataset.
func (h *SeedHandler) LoadSampleData(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.LoadSampleData(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: SEED_FAILED, Description: %v", err)
		writeFailed(w, http.StatusInternalServerError, "Error in accessing data in DB")
		return
	}
	writeSuccess(w, http.StatusOK, "Sample data loaded", counts)
}
