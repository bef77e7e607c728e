package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/middleware"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
)

type UserStore interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CreateUser(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, patch services.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id, requesterID primitive.ObjectID) error
}

type UserHandler struct {
	service UserStore
}

func NewUserHandler(service UserStore) *UserHandler {
	return &UserHandler{service: service}
}

// userBody is the account payload. The users API accepts the record either
// under a "data" key or as the bare body.
type userBody struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

func decodeUserBody(r *http.Request) (userBody, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return userBody{}, err
	}

	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 {
		raw = wrapped.Data
	}

	var body userBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return userBody{}, err
	}
	return body, nil
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: USER_LIST_FAILED, Description: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	writeSuccess(w, http.StatusOK, "", users)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	writeSuccess(w, http.StatusOK, "", user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeUserBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(r.Context(), body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		logging.Logger.Errorf("Event ID: USER_CREATE_FAILED, Description: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	writeSuccess(w, http.StatusCreated, "User created", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	body, err := decodeUserBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := services.UserPatch{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	}
	user, err := h.service.UpdateUser(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeError(w, http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, services.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			logging.Logger.Errorf("Event ID: USER_UPDATE_FAILED, Description: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}
	writeSuccess(w, http.StatusOK, "User updated", user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	requesterID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id, requesterID); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			writeError(w, http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, services.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			logging.Logger.Errorf("Event ID: USER_DELETE_FAILED, Description: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}
	writeSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

// validationMessage strips the sentinel prefix so the client sees the
// human-readable part of a validation error.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := services.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
