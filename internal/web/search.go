package web

import (
	"net/http"

	"campusfind/internal/feed"
	"campusfind/internal/model"
)

// Search handles GET /search. Filters come from the query string so
// searches are linkable.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := feed.Query{
		Text:     params.Get("q"),
		Category: params.Get("category"),
		Status:   params.Get("status"),
		Location: params.Get("location"),
	}

	items, complete := feed.Search(r.Context(), s.DB, query)

	data := &struct {
		PageData
		Items      []feed.Item
		Query      feed.Query
		Categories []string
		Incomplete bool
	}{
		PageData: PageData{
			Title: "Search Items",
			User:  GetWebClaims(r.Context()),
		},
		Items:      items,
		Query:      query,
		Categories: model.Categories,
		Incomplete: !complete,
	}
	s.Templates.Render(w, "search.html", data)
}
