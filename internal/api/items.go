package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"campusfind/internal/model"
	"campusfind/internal/store"
)

// ItemsHandler serves the lost and found item collections.
type ItemsHandler struct {
	DB *sql.DB
}

func (h *ItemsHandler) ListLost(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListLostItems(r.Context(), h.DB, 0)
	if err != nil {
		slog.Error("failed to list lost items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

func (h *ItemsHandler) ListFound(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListFoundItems(r.Context(), h.DB, 0)
	if err != nil {
		slog.Error("failed to list found items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

func (h *ItemsHandler) GetLost(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetLostItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get lost item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func (h *ItemsHandler) GetFound(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetFoundItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get found item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func (h *ItemsHandler) CreateLost(w http.ResponseWriter, r *http.Request) {
	report, ok := h.decodeReport(w, r)
	if !ok {
		return
	}

	item, err := store.CreateLostItem(r.Context(), h.DB, GetClaims(r).UserID, report, nil)
	if err != nil {
		slog.Error("failed to create lost item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

func (h *ItemsHandler) CreateFound(w http.ResponseWriter, r *http.Request) {
	report, ok := h.decodeReport(w, r)
	if !ok {
		return
	}

	item, err := store.CreateFoundItem(r.Context(), h.DB, GetClaims(r).UserID, report, nil)
	if err != nil {
		slog.Error("failed to create found item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// decodeReport decodes and validates a report body. Validation failures get a
// 400 with a per-field error map.
func (h *ItemsHandler) decodeReport(w http.ResponseWriter, r *http.Request) (model.Report, bool) {
	var report model.Report
	if err := decodeJSON(r, &report); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return report, false
	}
	if errs := report.Validate(); len(errs) > 0 {
		jsonResponse(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return report, false
	}
	return report, true
}

func (h *ItemsHandler) DeleteLost(w http.ResponseWriter, r *http.Request) {
	deleted, err := store.DeleteLostItem(r.Context(), h.DB, r.PathValue("id"), GetClaims(r).UserID)
	if err != nil {
		slog.Error("failed to delete lost item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemsHandler) DeleteFound(w http.ResponseWriter, r *http.Request) {
	deleted, err := store.DeleteFoundItem(r.Context(), h.DB, r.PathValue("id"), GetClaims(r).UserID)
	if err != nil {
		slog.Error("failed to delete found item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
