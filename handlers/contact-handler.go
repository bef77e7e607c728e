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

type ContactStore interface {
	GetAllContacts(ctx context.Context) ([]models.ContactView, error)
	GetContactByID(ctx context.Context, id primitive.ObjectID) (*models.ContactView, error)
	CreateContact(ctx context.Context, contact models.Contact) (*models.Contact, error)
	UpdateContact(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Contact, error)
	DeleteContact(ctx context.Context, id primitive.ObjectID) error
}

type ContactHandler struct {
	service ContactStore
}

func NewContactHandler(service ContactStore) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.GetAllContacts(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: CONTACT_LIST_FAILED, Description: %v", err)
		respondServiceError(w, "Contact", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", contacts)
}

func (h *ContactHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["contactId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	contact, err := h.service.GetContactByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "Contact", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", contact)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var contact models.Contact
	if err := json.Unmarshal(payload.Data, &contact); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateContact(r.Context(), contact)
	if err != nil {
		respondServiceError(w, "Contact", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Data created", created)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["contactId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	updated, err := h.service.UpdateContact(r.Context(), id, payload.Data)
	if err != nil {
		respondServiceError(w, "Contact", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Contact updated", updated)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["contactId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	if err := h.service.DeleteContact(r.Context(), id); err != nil {
		respondServiceError(w, "Contact", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Contact deleted successfully", nil)
}
