package api

import (
	"database/sql"
	"net/http"

	"campusfind/internal/feed"
)

// FeedHandler serves the merged lost-and-found feed.
type FeedHandler struct {
	DB *sql.DB
}

type feedResponse struct {
	Items      []feed.Item `json:"items"`
	Incomplete bool        `json:"incomplete,omitempty"`
}

func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	q := feed.Query{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
		Location: r.URL.Query().Get("location"),
	}

	items, complete := feed.Search(r.Context(), h.DB, q)
	jsonResponse(w, http.StatusOK, feedResponse{Items: items, Incomplete: !complete})
}

func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	items, complete := feed.Home(r.Context(), h.DB)
	jsonResponse(w, http.StatusOK, feedResponse{Items: items, Incomplete: !complete})
}
