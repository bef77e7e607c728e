package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/middleware"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/utils"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type LoginHandler struct {
	service Authenticator
}

func NewLoginHandler(service Authenticator) *LoginHandler {
	return &LoginHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logging.Logger.Errorf("Event ID: LOGIN_FAILED, Description: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Name, string(user.Role))
	if err != nil {
		logging.Logger.Errorf("Event ID: TOKEN_GENERATION_FAILED, Description: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(12 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logging.Logger.Infof("Event ID: USER_LOGGED_IN, Description: User %s signed in", user.Email)
	writeSuccess(w, http.StatusOK, "", loginResponse{Token: token, User: user})
}

// Logout clears the session cookie.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeSuccess(w, http.StatusOK, "Signed out", nil)
}
