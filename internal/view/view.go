package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/wanderstay/wanderstay/internal/models"
	"github.com/wanderstay/wanderstay/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the payload every template receives. Success and Error are
// the drained flash queues; Data is the page-specific view model.
type Page struct {
	CurrentUser *models.User
	Success     []string
	Error       []string
	Data        any
}

// Renderer renders HTML pages from the embedded template set.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named page. Flash queues are drained here, so each
// message is delivered at most once.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) error {
	page := Page{
		CurrentUser: UserFrom(r.Context()),
		Data:        data,
	}
	if s := session.FromContext(r.Context()); s != nil {
		page.Success, page.Error = s.PopFlashes()
	}

	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

type errorPage struct {
	StatusCode int
	Message    string
}

// Error renders the generic error page. Never returns a raw error
// payload without a page wrapper.
func (v *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, "error.html", Page{
		CurrentUser: UserFrom(r.Context()),
		Data:        errorPage{StatusCode: status, Message: message},
	}); err != nil {
		slog.Error("render error page", "error", err)
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// HTTPError carries a status and user-facing message to the central
// error translator.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// HandlerFunc is an http handler that may fail; failures funnel into
// the central error page.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap converts a failable handler into an http.HandlerFunc. Unknown
// errors render as 500 "Something went wrong." and are logged.
func (v *Renderer) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		status, message := http.StatusInternalServerError, "Something went wrong."
		var he *HTTPError
		if errors.As(err, &he) {
			status, message = he.Status, he.Message
		} else {
			slog.Error("handler error", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		v.Error(w, r, status, message)
	}
}
