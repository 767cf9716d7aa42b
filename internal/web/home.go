package web

import (
	"net/http"

	"campusfind/internal/feed"
)

// Home handles GET /. Shows the most recent few reports of each kind.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	items, complete := feed.Home(r.Context(), s.DB)

	data := &struct {
		PageData
		Items      []feed.Item
		Incomplete bool
	}{
		PageData: PageData{
			Title:   "CampusFind",
			User:    GetWebClaims(r.Context()),
			Success: takeFlash(w, r),
		},
		Items:      items,
		Incomplete: !complete,
	}
	s.Templates.Render(w, "home.html", data)
}
