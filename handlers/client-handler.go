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

// ClientStore is the repository surface the handler consumes.
type ClientStore interface {
	GetAllClients(ctx context.Context) ([]models.ClientView, error)
	GetClientByID(ctx context.Context, id primitive.ObjectID) (*models.ClientView, error)
	CreateClient(ctx context.Context, client models.Client) (*models.Client, error)
	UpdateClient(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Client, error)
	DeleteClient(ctx context.Context, id primitive.ObjectID) error
}

type ClientHandler struct {
	service ClientStore
}

func NewClientHandler(service ClientStore) *ClientHandler {
	return &ClientHandler{service: service}
}

func (h *ClientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.GetAllClients(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: CLIENT_LIST_FAILED, Description: %v", err)
		respondServiceError(w, "Client", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", clients)
}

func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["clientId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	client, err := h.service.GetClientByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "Client", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var client models.Client
	if err := json.Unmarshal(payload.Data, &client); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateClient(r.Context(), client)
	if err != nil {
		respondServiceError(w, "Client", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Data created", created)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["clientId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	updated, err := h.service.UpdateClient(r.Context(), id, payload.Data)
	if err != nil {
		respondServiceError(w, "Client", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Client updated", updated)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["clientId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		respondServiceError(w, "Client", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Client deleted successfully", nil)
}
