package web

import (
	"log/slog"
	"net/http"

	"campusfind/internal/auth"
	"campusfind/internal/feed"
	"campusfind/internal/store"
)

// ItemDetail handles GET /item/{kind}/{id}. A missing or deleted item
// renders an explicit not-found page linking back to search.
func (s *Server) ItemDetail(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	id := r.PathValue("id")
	claims := GetWebClaims(r.Context())

	var item feed.Item
	switch kind {
	case "lost":
		lost, err := store.GetLostItem(r.Context(), s.DB, id)
		if err != nil {
			slog.Error("failed to get lost item", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if lost == nil {
			s.renderItemNotFound(w, claims)
			return
		}
		item = feed.Item{Kind: feed.KindLost, Lost: lost}
	case "found":
		found, err := store.GetFoundItem(r.Context(), s.DB, id)
		if err != nil {
			slog.Error("failed to get found item", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if found == nil {
			s.renderItemNotFound(w, claims)
			return
		}
		item = feed.Item{Kind: feed.KindFound, Found: found}
	default:
		s.renderItemNotFound(w, claims)
		return
	}

	data := &struct {
		PageData
		Item feed.Item
	}{
		PageData: PageData{Title: item.Title(), User: claims},
		Item:     item,
	}
	s.Templates.Render(w, "item_detail.html", data)
}

func (s *Server) renderItemNotFound(w http.ResponseWriter, claims *auth.Claims) {
	w.WriteHeader(http.StatusNotFound)
	s.Templates.Render(w, "item_not_found.html", &struct {
		PageData
	}{
		PageData: PageData{Title: "Item not found", User: claims},
	})
}
