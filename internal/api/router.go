package api

import (
	"database/sql"
	"net/http"

	"campusfind/internal/ratelimit"
)

// NewRouter builds the JSON API. Feed and item reads are public, writes
// require a bearer token, and the credential endpoints are rate limited
// per client address.
func NewRouter(db *sql.DB, jwtSecret string, authLimiter *ratelimit.Limiter) http.Handler {
	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	feedHandler := &FeedHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	profileHandler := &ProfileHandler{DB: db}

	requireAuth := AuthMiddleware(db, jwtSecret)
	limited := func(h http.HandlerFunc) http.Handler {
		return authLimiter.Middleware(h)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /api/auth/signup", limited(authHandler.Signup))
	mux.Handle("POST /api/auth/login", limited(authHandler.Login))
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/auth/reset", limited(authHandler.RequestReset))
	mux.Handle("POST /api/auth/reset/confirm", limited(authHandler.ConfirmReset))

	mux.HandleFunc("GET /api/feed", feedHandler.Feed)
	mux.HandleFunc("GET /api/feed/home", feedHandler.Home)

	mux.HandleFunc("GET /api/lost", itemsHandler.ListLost)
	mux.HandleFunc("GET /api/lost/{id}", itemsHandler.GetLost)
	mux.Handle("POST /api/lost", requireAuth(http.HandlerFunc(itemsHandler.CreateLost)))
	mux.Handle("DELETE /api/lost/{id}", requireAuth(http.HandlerFunc(itemsHandler.DeleteLost)))

	mux.HandleFunc("GET /api/found", itemsHandler.ListFound)
	mux.HandleFunc("GET /api/found/{id}", itemsHandler.GetFound)
	mux.Handle("POST /api/found", requireAuth(http.HandlerFunc(itemsHandler.CreateFound)))
	mux.Handle("DELETE /api/found/{id}", requireAuth(http.HandlerFunc(itemsHandler.DeleteFound)))

	mux.Handle("GET /api/profile", requireAuth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /api/profile", requireAuth(http.HandlerFunc(profileHandler.Update)))

	return mux
}
