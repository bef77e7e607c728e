package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/middleware"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
)

type fakeAuthenticator struct {
	user *models.User
	err  error
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return f.user, f.err
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ana",
		Email: "ana@smithsagency.com",
		Role:  models.RoleAdmin,
	}
	handler := NewLoginHandler(&fakeAuthenticator{user: user})

	body := `{"email": "ana@smithsagency.com", "password": "secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "ana@smithsagency.com", resp.Data.User.Email)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, resp.Data.Token, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLogin_BadCredentials(t *testing.T) {
	handler := NewLoginHandler(&fakeAuthenticator{err: services.ErrInvalidCredentials})

	body := `{"email": "ana@smithsagency.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "error", decodeEnvelope(t, rec).Status)
}

func TestLogin_MissingFields(t *testing.T) {
	handler := NewLoginHandler(&fakeAuthenticator{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email": ""}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	handler := NewLoginHandler(&fakeAuthenticator{})

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
