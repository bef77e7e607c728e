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

type TeamStore interface {
	GetAllTeamMembers(ctx context.Context) ([]models.TeamMemberView, error)
	GetTeamMemberByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMemberView, error)
	CreateTeamMember(ctx context.Context, member models.TeamMember) (*models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id primitive.ObjectID) error
}

type TeamHandler struct {
	service TeamStore
}

func NewTeamHandler(service TeamStore) *TeamHandler {
	return &TeamHandler{service: service}
}

func (h *TeamHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.GetAllTeamMembers(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: TEAM_LIST_FAILED, Description: %v", err)
		respondServiceError(w, "Team member", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", members)
}

func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid team member ID format")
		return
	}

	member, err := h.service.GetTeamMemberByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "Team member", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", member)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var member models.TeamMember
	if err := json.Unmarshal(payload.Data, &member); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateTeamMember(r.Context(), member)
	if err != nil {
		respondServiceError(w, "Team member", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Data created", created)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid team member ID format")
		return
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	updated, err := h.service.UpdateTeamMember(r.Context(), id, payload.Data)
	if err != nil {
		respondServiceError(w, "Team member", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Team member updated", updated)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid team member ID format")
		return
	}

	if err := h.service.DeleteTeamMember(r.Context(), id); err != nil {
		respondServiceError(w, "Team member", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Team member deleted successfully", nil)
}
