package handlers

import (
	"encoding/json"
	"net/http"

	"fintrack/internal/models"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ListCategories returns the default categories plus the caller's own,
// optionally filtered by the type query parameter.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	categories, err := h.db.ListCategories(claims.UserID, r.URL.Query().Get("type"))
	if err != nil {
		storageError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a custom category owned by the caller.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "Name and type are required")
		return
	}
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		writeError(w, http.StatusBadRequest, "Type must be income or expense")
		return
	}

	id, err := h.db.CreateCategory(claims.UserID, req.Name, req.Type)
	if err != nil {
		storageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Category added successfully",
	})
}
