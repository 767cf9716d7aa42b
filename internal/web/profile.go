package web

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"campusfind/internal/blob"
	"campusfind/internal/imaging"
	"campusfind/internal/model"
	"campusfind/internal/store"
)

// ProfilePage handles GET /profile. The owner's reports load as two
// independent lists, not a merged feed.
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	user, err := store.GetUser(r.Context(), s.DB, claims.UserID)
	if err != nil || user == nil {
		slog.Error("failed to load profile", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	lost, err := store.ListLostItemsByUser(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list own lost items", "error", err)
	}
	found, err := store.ListFoundItemsByUser(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list own found items", "error", err)
	}

	tab := r.URL.Query().Get("tab")
	if tab != "found" {
		tab = "lost"
	}

	data := &struct {
		PageData
		Profile    *model.User
		LostItems  []model.LostItem
		FoundItems []model.FoundItem
		Tab        string
	}{
		PageData: PageData{
			Title:   "My Profile",
			User:    claims,
			Success: takeFlash(w, r),
		},
		Profile:    user,
		LostItems:  lost,
		FoundItems: found,
		Tab:        tab,
	}
	s.Templates.Render(w, "profile.html", data)
}

// ProfileUpdateSubmit handles POST /profile. Full name and phone are
// replaced unconditionally; item records are never touched.
func (s *Server) ProfileUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	fullName := strings.TrimSpace(r.FormValue("full_name"))
	phone := strings.TrimSpace(r.FormValue("phone"))

	if err := store.UpdateProfile(r.Context(), s.DB, claims.UserID, fullName, phone); err != nil {
		slog.Error("failed to update profile", "error", err)
		setFlash(w, err.Error())
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	slog.Info("profile updated", "user", claims.Email)
	setFlash(w, "Profile updated successfully!")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// AvatarSubmit handles POST /profile/avatar.
func (s *Server) AvatarSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, model.MaxImageSize+64<<10)
	if err := r.ParseMultipartForm(model.MaxImageSize); err != nil {
		setFlash(w, "Image size must be less than 5MB")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		setFlash(w, "Choose an image to upload")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if header.Size > model.MaxImageSize {
		setFlash(w, "Image size must be less than 5MB")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		setFlash(w, "Failed to read the uploaded image")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	normalized := imaging.Normalize(data, strings.ToLower(pathExt(header.Filename)))
	key := blob.ItemKey(claims.UserID, "avatar"+normalized.Ext)
	url, err := s.Blobs.Upload(blob.BucketAvatars, key, normalized.Data)
	if err != nil {
		slog.Error("failed to upload avatar", "error", err)
		setFlash(w, err.Error())
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	if err := store.SetUserAvatar(r.Context(), s.DB, claims.UserID, url); err != nil {
		slog.Error("failed to save avatar", "error", err)
		setFlash(w, err.Error())
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	setFlash(w, "Avatar updated successfully!")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /profile/items/{kind}/{id}/delete.
// Deletion is owner-scoped: a non-owned or missing item affects
// nothing and reports failure. The confirmation prompt lives in the
// page; the delete itself is unconditional, no retry.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	kind := r.PathValue("kind")
	id := r.PathValue("id")

	var deleted bool
	var err error
	switch kind {
	case "lost":
		deleted, err = store.DeleteLostItem(r.Context(), s.DB, id, claims.UserID)
	case "found":
		deleted, err = store.DeleteFoundItem(r.Context(), s.DB, id, claims.UserID)
	default:
		http.NotFound(w, r)
		return
	}

	redirect := "/profile?tab=" + kind
	if err != nil {
		slog.Error("failed to delete item", "kind", kind, "error", err)
		setFlash(w, err.Error())
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}
	if !deleted {
		setFlash(w, "Item not found or not yours to delete")
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	slog.Info("item deleted", "kind", kind, "user", claims.Email)
	setFlash(w, "Item deleted successfully")
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
