package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/models"
	"fintrack/internal/storage"

	"github.com/google/uuid"
)

// Context key type to avoid collisions.
type contextKey string

// claimsContextKey is the context key for the verified bearer claims.
const claimsContextKey contextKey = "claims"

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db     *storage.DB
	tokens *auth.TokenIssuer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, tokens *auth.TokenIssuer) *Handlers {
	return &Handlers{db: db, tokens: tokens}
}

// ClaimsFromContext retrieves the verified bearer claims from request context.
func ClaimsFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// verified claims in the request context.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "Token expired")
			} else {
				writeError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithRequestLogging logs every request with a generated request id.
func WithRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		slog.Info("request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// storageError surfaces a store failure as a 500 with its message.
func storageError(w http.ResponseWriter, err error) {
	slog.Error("Storage error", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

// requireClaims returns the caller's claims, or writes a 401 and returns nil.
func requireClaims(w http.ResponseWriter, r *http.Request) *auth.Claims {
	claims := ClaimsFromContext(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
	}
	return claims
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Register creates a new account and returns a signed token for it.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	if _, err := h.db.GetUserByEmail(req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		storageError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	user, err := h.db.CreateUser(req.Name, req.Email, hash)
	if err != nil {
		storageError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Login authenticates an account and returns a signed token for it.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same message as a wrong password so accounts cannot be enumerated.
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		storageError(w, err)
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// Me returns the identity claims carried by the caller's token.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": models.PublicUser{ID: claims.UserID, Name: claims.Name, Email: claims.Email},
	})
}
