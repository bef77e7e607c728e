package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/middleware"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/utils"
)

type fakeUserStore struct {
	users       []models.User
	user        *models.User
	err         error
	createdName string
	deleteErr   func(id, requesterID primitive.ObjectID) error
}

func (f *fakeUserStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return f.users, f.err
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUserStore) CreateUser(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.createdName = name
	return &models.User{Name: name, Email: email, Role: role}, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, patch services.UserPatch) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id, requesterID primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr(id, requesterID)
	}
	return f.err
}

func TestUserHandler_Create_BareBody(t *testing.T) {
	store := &fakeUserStore{}
	handler := NewUserHandler(store)

	body := `{"name": "Ana", "email": "ana@smithsagency.com", "password": "secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Ana", store.createdName)
}

func TestUserHandler_Create_WrappedBody(t *testing.T) {
	store := &fakeUserStore{}
	handler := NewUserHandler(store)

	body := `{"data": {"name": "Marko", "email": "marko@smithsagency.com", "password": "secret1"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Marko", store.createdName)
}

func TestUserHandler_Create_ValidationMessagePassedThrough(t *testing.T) {
	handler := NewUserHandler(&fakeUserStore{
		err: services.ErrValidation,
	})

	body := `{"name": "", "email": "", "password": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", decodeEnvelope(t, rec).Status)
}

func TestUserHandler_Delete_SelfDeleteRefused(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	requesterID := primitive.NewObjectID()

	store := &fakeUserStore{
		deleteErr: func(id, reqID primitive.ObjectID) error {
			if id == reqID {
				return services.ErrValidation
			}
			return nil
		},
	}
	handler := NewUserHandler(store)

	token, err := utils.GenerateToken(requesterID.Hex(), "admin@smithsagency.com", "Admin", "admin")
	require.NoError(t, err)

	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.Delete))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+requesterID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = mux.SetURLVars(req, map[string]string{"id": requesterID.Hex()})
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Delete_OtherUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	requesterID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()

	handler := NewUserHandler(&fakeUserStore{})

	token, err := utils.GenerateToken(requesterID.Hex(), "admin@smithsagency.com", "Admin", "admin")
	require.NoError(t, err)

	wrapped := middleware.JWTAuthMiddleware(http.HandlerFunc(handler.Delete))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+targetID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = mux.SetURLVars(req, map[string]string{"id": targetID.Hex()})
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decodeEnvelope(t, rec).Message)
}

func TestUserHandler_GetByID_NotFound(t *testing.T) {
	handler := NewUserHandler(&fakeUserStore{err: services.ErrNotFound})

	id := primitive.NewObjectID().Hex()
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/users/"+id, nil),
		map[string]string{"id": id})
	rec := httptest.NewRecorder()
	handler.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeEnvelope(t, rec).Message)
}
