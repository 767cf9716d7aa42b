package web

import (
	"database/sql"
	"net/http"

	"campusfind/internal/blob"
	"campusfind/internal/ratelimit"
	webembed "campusfind/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, blobs *blob.Store, authLimiter *ratelimit.Limiter) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
		Blobs:     blobs,
	}

	mux := http.NewServeMux()
	requireAuth := RequireAuth(jwtSecret, db)
	optionalAuth := OptionalAuth(jwtSecret, db)

	// Static assets and uploaded images.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /uploads/", blobs.Handler())

	// Public pages.
	mux.Handle("GET /{$}", optionalAuth(http.HandlerFunc(s.Home)))
	mux.Handle("GET /search", optionalAuth(http.HandlerFunc(s.Search)))
	mux.Handle("GET /item/{kind}/{id}", optionalAuth(http.HandlerFunc(s.ItemDetail)))

	// Auth pages; submissions are rate limited per client address.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.Handle("POST /login", authLimiter.Middleware(http.HandlerFunc(s.LoginSubmit)))
	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.Handle("POST /signup", authLimiter.Middleware(http.HandlerFunc(s.SignupSubmit)))
	mux.HandleFunc("GET /forgot-password", s.ForgotPasswordPage)
	mux.Handle("POST /forgot-password", authLimiter.Middleware(http.HandlerFunc(s.ForgotPasswordSubmit)))
	mux.HandleFunc("GET /reset-password", s.ResetPasswordPage)
	mux.Handle("POST /reset-password", authLimiter.Middleware(http.HandlerFunc(s.ResetPasswordSubmit)))
	mux.HandleFunc("POST /logout", s.Logout)

	// Session-gated pages.
	mux.Handle("GET /report/{kind}", requireAuth(http.HandlerFunc(s.ReportPage)))
	mux.Handle("POST /report/{kind}", requireAuth(http.HandlerFunc(s.ReportSubmit)))
	mux.Handle("GET /profile", requireAuth(http.HandlerFunc(s.ProfilePage)))
	mux.Handle("POST /profile", requireAuth(http.HandlerFunc(s.ProfileUpdateSubmit)))
	mux.Handle("POST /profile/avatar", requireAuth(http.HandlerFunc(s.AvatarSubmit)))
	mux.Handle("POST /profile/items/{kind}/{id}/delete", requireAuth(http.HandlerFunc(s.ItemDeleteSubmit)))

	return mux, nil
}
