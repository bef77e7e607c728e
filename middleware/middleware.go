package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/logging"
	"github.com/TahirMustafa-NO-ONE/smiths-crm/utils"
)

type contextKey string

const claimsKey contextKey = "sessionClaims"

// SessionCookieName is the cookie fallback for browser clients that do not
// set an Authorization header.
const SessionCookieName = "session"

// ClaimsFromContext returns the validated session claims, or nil when the
// request never passed JWTAuthMiddleware.
func ClaimsFromContext(ctx context.Context) *utils.Claims {
	claims, _ := ctx.Value(claimsKey).(*utils.Claims)
	return claims
}

// JWTAuthMiddleware validates the bearer token (or session cookie) and
// stores the claims in the request context.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ""
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := r.Cookie(SessionCookieName); err == nil {
			tokenStr = cookie.Value
		}

		if tokenStr == "" {
			logging.Logger.Warnf("Event ID: AUTH_MISSING_TOKEN, Description: No credentials on request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: AUTH_INVALID_TOKEN, Description: Invalid token on request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a handler on the role carried by the validated claims.
func RequireRole(next http.Handler, allowedRoles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		for _, role := range allowedRoles {
			if claims.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}

		logging.Logger.Warnf("Event ID: AUTH_FORBIDDEN, Description: Role %q denied for %s %s", claims.Role, r.Method, r.URL.Path)
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
	})
}

// EnableCORS mirrors the browser-facing headers the UI needs.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
