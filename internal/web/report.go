package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"campusfind/internal/auth"
	"campusfind/internal/blob"
	"campusfind/internal/feed"
	"campusfind/internal/imaging"
	"campusfind/internal/model"
	"campusfind/internal/store"
)

// reportFormData renders the lost/found report form, keeping entered
// values and inline field errors across a failed submission.
type reportFormData struct {
	PageData
	Kind       feed.Kind
	Form       model.Report
	Errors     model.ReportErrors
	Categories []string
}

// ReportPage handles GET /report/{kind}. Contact info is pre-filled
// from the profile phone, falling back to the account email.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	claims := GetWebClaims(r.Context())

	contact := claims.Email
	if user, err := store.GetUser(r.Context(), s.DB, claims.UserID); err != nil {
		slog.Error("failed to load profile for report form", "error", err)
	} else if user != nil {
		contact = user.PreferredContact()
	}

	s.Templates.Render(w, "report.html", &reportFormData{
		PageData:   PageData{Title: reportTitle(kind), User: claims},
		Kind:       kind,
		Form:       model.Report{ContactInfo: contact},
		Errors:     model.ReportErrors{},
		Categories: model.Categories,
	})
}

// ReportSubmit handles POST /report/{kind}. Validation collects every
// field error before anything is stored; the image (if present) is
// uploaded to the blob store first, then the record is inserted with
// the resulting public URL.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	claims := GetWebClaims(r.Context())

	// Image limit plus slack for the text fields.
	r.Body = http.MaxBytesReader(w, r.Body, model.MaxImageSize+64<<10)
	if err := r.ParseMultipartForm(model.MaxImageSize); err != nil {
		s.renderReportError(w, r, kind, "Image size must be less than 5MB")
		return
	}

	form := model.Report{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Location:    r.FormValue("location"),
		ContactInfo: r.FormValue("contact_info"),
	}

	if errs := form.Validate(); len(errs) > 0 {
		s.Templates.Render(w, "report.html", &reportFormData{
			PageData:   PageData{Title: reportTitle(kind), User: claims},
			Kind:       kind,
			Form:       form,
			Errors:     errs,
			Categories: model.Categories,
		})
		return
	}

	var imageURL *string
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()

		if header.Size > model.MaxImageSize {
			s.renderReportFormError(w, claims, kind, form, "Image size must be less than 5MB")
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			s.renderReportFormError(w, claims, kind, form, "Failed to read the uploaded image")
			return
		}

		normalized := imaging.Normalize(data, strings.ToLower(pathExt(header.Filename)))
		key := blob.ItemKey(claims.UserID, "image"+normalized.Ext)
		url, err := s.Blobs.Upload(blob.BucketItemImages, key, normalized.Data)
		if err != nil {
			slog.Error("failed to upload report image", "error", err)
			s.renderReportFormError(w, claims, kind, form, err.Error())
			return
		}
		imageURL = &url
	case errors.Is(err, http.ErrMissingFile):
		// Image is optional.
	default:
		s.renderReportFormError(w, claims, kind, form, "Invalid image upload")
		return
	}

	if kind == feed.KindLost {
		_, err = store.CreateLostItem(r.Context(), s.DB, claims.UserID, form, imageURL)
	} else {
		_, err = store.CreateFoundItem(r.Context(), s.DB, claims.UserID, form, imageURL)
	}
	if err != nil {
		slog.Error("failed to create report", "kind", kind, "error", err)
		s.renderReportFormError(w, claims, kind, form, err.Error())
		return
	}

	slog.Info("item reported", "kind", kind, "user", claims.Email, "title", form.Title)
	if kind == feed.KindLost {
		setFlash(w, "Lost item reported successfully!")
	} else {
		setFlash(w, "Found item reported successfully!")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderReportError re-renders an empty form with a banner error
// (used before the form fields could be parsed).
func (s *Server) renderReportError(w http.ResponseWriter, r *http.Request, kind feed.Kind, message string) {
	s.Templates.Render(w, "report.html", &reportFormData{
		PageData:   PageData{Title: reportTitle(kind), User: GetWebClaims(r.Context()), Error: message},
		Kind:       kind,
		Errors:     model.ReportErrors{},
		Categories: model.Categories,
	})
}

// renderReportFormError re-renders the form with the entered values
// intact and a banner error.
func (s *Server) renderReportFormError(w http.ResponseWriter, claims *auth.Claims, kind feed.Kind, form model.Report, message string) {
	s.Templates.Render(w, "report.html", &reportFormData{
		PageData:   PageData{Title: reportTitle(kind), User: claims, Error: message},
		Kind:       kind,
		Form:       form,
		Errors:     model.ReportErrors{},
		Categories: model.Categories,
	})
}

func reportKind(r *http.Request) (feed.Kind, bool) {
	switch r.PathValue("kind") {
	case "lost":
		return feed.KindLost, true
	case "found":
		return feed.KindFound, true
	default:
		return "", false
	}
}

func reportTitle(kind feed.Kind) string {
	if kind == feed.KindLost {
		return "Report Lost Item"
	}
	return "Report Found Item"
}

// pathExt returns the extension of an uploaded filename, "" if none.
func pathExt(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}
