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

type TaskStore interface {
	GetAllTasks(ctx context.Context) ([]models.TaskView, error)
	GetTaskByID(ctx context.Context, id primitive.ObjectID) (*models.TaskView, error)
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Task, error)
	DeleteTask(ctx context.Context, id primitive.ObjectID) error
}

type TaskHandler struct {
	service TaskStore
}

func NewTaskHandler(service TaskStore) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_LIST_FAILED, Description: %v", err)
		respondServiceError(w, "Task", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", tasks)
}

func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, "Task", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	var task models.Task
	if err := json.Unmarshal(payload.Data, &task); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateTask(r.Context(), task)
	if err != nil {
		respondServiceError(w, "Task", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Data created", created)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid data")
		return
	}

	updated, err := h.service.UpdateTask(r.Context(), id, payload.Data)
	if err != nil {
		respondServiceError(w, "Task", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task updated", updated)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		respondServiceError(w, "Task", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}
