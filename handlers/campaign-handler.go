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

type CampaignStore interface {
	GetAllCampaigns(ctx context.Context) ([]models.CampaignView, error)
	GetCampaignByID(ctx context.Context, id primitive.ObjectID) (*models.CampaignView, error)
	CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, id primitive.ObjectID) error
}

type CampaignHandler struct {
	service CampaignStore
}

func NewCampaignHandler(service CampaignStore) *CampaignHandler {
	return &CampaignHandler{service: service}
}

func (h *CampaignHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.service.GetAllCampaigns(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: CAMPAIGN_LIST_FAILED, Description: %v", err)
		respondServiceError(w, "Campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", campaigns)
}

func (h *CampaignHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["campaignId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid campaign ID format")
		return
	}

	campaign, err := h.service.GetCampaignByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "Campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", campaign)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var campaign models.Campaign
	if err := json.Unmarshal(payload.Data, &campaign); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateCampaign(r.Context(), campaign)
	if err != nil {
		respondServiceError(w, "Campaign", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Data created", created)
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["campaignId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid campaign ID format")
		return
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	updated, err := h.service.UpdateCampaign(r.Context(), id, payload.Data)
	if err != nil {
		respondServiceError(w, "Campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Campaign updated", updated)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["campaignId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid campaign ID format")
		return
	}

	if err := h.service.DeleteCampaign(r.Context(), id); err != nil {
		respondServiceError(w, "Campaign", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Campaign deleted successfully", nil)
}
