package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"campusfind/internal/auth"
	"campusfind/internal/model"
	"campusfind/internal/store"
)

// authFormData carries entered values back into auth forms after a
// failed submission.
type authFormData struct {
	PageData
	Email    string
	FullName string
	Token    string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &authFormData{
		PageData: PageData{Title: "Login", Success: takeFlash(w, r)},
	})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	renderError := func(message string) {
		s.Templates.Render(w, "login.html", &authFormData{
			PageData: PageData{Title: "Login", Error: message},
			Email:    email,
		})
	}

	if email == "" || password == "" {
		renderError("Enter your email and password.")
		return
	}

	user, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		renderError("Login failed, try again.")
		return
	}
	if user == nil {
		renderError("Invalid email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		renderError("Invalid email or password.")
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Email, user.FullName)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		renderError("Login failed, try again.")
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &authFormData{
		PageData: PageData{Title: "Sign Up"},
	})
}

// SignupSubmit handles POST /signup.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	fullName := strings.TrimSpace(r.FormValue("full_name"))
	password := r.FormValue("password")

	renderError := func(message string) {
		s.Templates.Render(w, "signup.html", &authFormData{
			PageData: PageData{Title: "Sign Up", Error: message},
			Email:    email,
			FullName: fullName,
		})
	}

	if email == "" || fullName == "" {
		renderError("Enter your email and full name.")
		return
	}
	if err := model.ValidatePassword(password); err != nil {
		renderError(err.Error())
		return
	}

	existing, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		renderError("Sign up failed, try again.")
		return
	}
	if existing != nil {
		renderError("An account with this email already exists.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		renderError("Sign up failed, try again.")
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, email, string(hash), fullName)
	if err != nil {
		slog.Error("failed to create user", "error", err)
		renderError(err.Error())
		return
	}

	slog.Info("user signed up", "email", user.Email)

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Email, user.FullName)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The session's JTI is revoked so the
// cookie can't be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			expiry := time.Now().Add(auth.TokenExpiry)
			if claims.ExpiresAt != nil {
				expiry = claims.ExpiresAt.Time
			}
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, expiry); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ForgotPasswordPage handles GET /forgot-password.
func (s *Server) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "forgot_password.html", &authFormData{
		PageData: PageData{Title: "Forgot Password"},
	})
}

// ForgotPasswordSubmit handles POST /forgot-password. The response is
// the same whether or not the email exists, so accounts can't be
// enumerated. There is no mailer; the reset link is logged for an
// operator to pass along.
func (s *Server) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		s.Templates.Render(w, "forgot_password.html", &authFormData{
			PageData: PageData{Title: "Forgot Password", Error: "Enter your email."},
		})
		return
	}

	user, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
	}
	if user != nil {
		token, err := store.CreatePasswordReset(r.Context(), s.DB, user.ID)
		if err != nil {
			slog.Error("failed to create password reset", "error", err)
		} else {
			slog.Info("password reset requested", "email", email, "link", "/reset-password?token="+token)
		}
	}

	s.Templates.Render(w, "forgot_password.html", &authFormData{
		PageData: PageData{
			Title:   "Forgot Password",
			Success: "If that email has an account, a reset link has been sent.",
		},
	})
}

// ResetPasswordPage handles GET /reset-password?token=...
func (s *Server) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "reset_password.html", &authFormData{
		PageData: PageData{Title: "Reset Password"},
		Token:    r.URL.Query().Get("token"),
	})
}

// ResetPasswordSubmit handles POST /reset-password.
func (s *Server) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")
	password := r.FormValue("password")

	renderError := func(message string) {
		s.Templates.Render(w, "reset_password.html", &authFormData{
			PageData: PageData{Title: "Reset Password", Error: message},
			Token:    token,
		})
	}

	if err := model.ValidatePassword(password); err != nil {
		renderError(err.Error())
		return
	}

	userID, err := store.ConsumePasswordReset(r.Context(), s.DB, token)
	if err != nil {
		slog.Error("failed to consume password reset", "error", err)
		renderError("Password reset failed, try again.")
		return
	}
	if userID == "" {
		renderError("This reset link is invalid or has expired.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		renderError("Password reset failed, try again.")
		return
	}

	if err := store.UpdateUserPassword(r.Context(), s.DB, userID, string(hash)); err != nil {
		slog.Error("failed to update password", "error", err)
		renderError("Password reset failed, try again.")
		return
	}

	setFlash(w, "Password updated, you can log in now.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
