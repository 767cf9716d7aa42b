package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"campusfind/internal/model"
	"campusfind/internal/store"
)

// ProfileHandler serves the authenticated user's profile and postings.
type ProfileHandler struct {
	DB *sql.DB
}

type profileResponse struct {
	User       *model.User       `json:"user"`
	LostItems  []model.LostItem  `json:"lost_items"`
	FoundItems []model.FoundItem `json:"found_items"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r)

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	lost, err := store.ListLostItemsByUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list user's lost items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	found, err := store.ListFoundItemsByUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list user's found items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	jsonResponse(w, http.StatusOK, profileResponse{User: user, LostItems: lost, FoundItems: found})
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r)

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		jsonError(w, http.StatusBadRequest, "full name is required")
		return
	}

	if err := store.UpdateProfile(r.Context(), h.DB, claims.UserID, req.FullName, strings.TrimSpace(req.Phone)); err != nil {
		slog.Error("failed to update profile", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}
