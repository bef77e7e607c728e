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

type ProjectStore interface {
	GetAllProjects(ctx context.Context) ([]models.ProjectView, error)
	GetProjectByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectView, error)
	CreateProject(ctx context.Context, project models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Project, error)
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
}

type ProjectHandler struct {
	service ProjectStore
}

func NewProjectHandler(service ProjectStore) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetAllProjects(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_LIST_FAILED, Description: %v", err)
		respondServiceError(w, "Project", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", projects)
}

func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["projectId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "Project", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", project)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var project models.Project
	if err := json.Unmarshal(payload.Data, &project); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateProject(r.Context(), project)
	if err != nil {
		respondServiceError(w, "Project", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Data created", created)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["projectId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	updated, err := h.service.UpdateProject(r.Context(), id, payload.Data)
	if err != nil {
		respondServiceError(w, "Project", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Project updated", updated)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["projectId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		respondServiceError(w, "Project", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Project deleted successfully", nil)
}
