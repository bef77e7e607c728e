package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

type LeadStore interface {
	GetAllLeads(ctx context.Context) ([]models.LeadView, error)
	GetLeadByID(ctx context.Context, id primitive.ObjectID) (*models.LeadView, error)
	CreateLead(ctx context.Context, lead models.Lead) (*models.Lead, error)
	UpdateLead(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Lead, error)
	DeleteLead(ctx context.Context, id primitive.ObjectID) error
}

type LeadHandler struct {
	service LeadStore
}

func NewLeadHandler(service LeadStore) *LeadHandler {
	return &LeadHandler{service: service}
}

func (h *LeadHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	leads, err := h.service.GetAllLeads(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: LEAD_LIST_FAILED, Description: %v", err)
		respondServiceError(w, "Lead", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", leads)
}

func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["leadId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	lead, err := h.service.GetLeadByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "Lead", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var lead models.Lead
	if err := json.Unmarshal(payload.Data, &lead); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateLead(r.Context(), lead)
	if err != nil {
		respondServiceError(w, "Lead", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Data created", created)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["leadId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	updated, err := h.service.UpdateLead(r.Context(), id, payload.Data)
	if err != nil {
		respondServiceError(w, "Lead", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Lead updated", updated)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["leadId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	if err := h.service.DeleteLead(r.Context(), id); err != nil {
		respondServiceError(w, "Lead", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Lead deleted successfully", nil)
}
