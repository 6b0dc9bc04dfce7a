package listings

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wanderstay/wanderstay/internal/models"
	"github.com/wanderstay/wanderstay/internal/session"
	"github.com/wanderstay/wanderstay/internal/store"
	"github.com/wanderstay/wanderstay/internal/view"
)

// ListingStore defines the interface for listing persistence.
type ListingStore interface {
	Insert(ctx context.Context, l *models.Listing) (string, error)
	FindAll(ctx context.Context) ([]models.Listing, error)
	FindByID(ctx context.Context, id string) (*models.Listing, error)
	UpdateByID(ctx context.Context, id string, f models.ListingForm) error
	DeleteByID(ctx context.Context, id string) error
	Search(ctx context.Context, f models.SearchFilter) ([]models.Listing, error)
}

// Handler holds the listing HTTP handlers.
type Handler struct {
	store ListingStore
	view  *view.Renderer
}

func NewHandler(store ListingStore, v *view.Renderer) *Handler {
	return &Handler{store: store, view: v}
}

// Index renders all listings. GET / and GET /listings.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) error {
	all, err := h.store.FindAll(r.Context())
	if err != nil {
		return err
	}
	return h.view.Render(w, r, http.StatusOK, "index.html", all)
}

// About renders the static about page.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) error {
	return h.view.Render(w, r, http.StatusOK, "about.html", nil)
}

// New renders the creation form.
func (h *Handler) New(w http.ResponseWriter, r *http.Request) error {
	return h.view.Render(w, r, http.StatusOK, "new.html", nil)
}

// Create validates the payload and inserts a listing. Invalid payloads
// abort before any store call.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	form, errs := Validate(inputFromRequest(r))
	if len(errs) > 0 {
		return view.NewHTTPError(http.StatusBadRequest, JoinErrors(errs))
	}

	l := &models.Listing{
		Title:       form.Title,
		Description: form.Description,
		Image:       form.Image,
		Price:       form.Price,
		Location:    form.Location,
		Country:     form.Country,
	}
	if _, err := h.store.Insert(r.Context(), l); err != nil {
		return err
	}

	session.FromContext(r.Context()).AddFlash(session.FlashSuccess, "New Listing Created!")
	http.Redirect(w, r, "/listings", http.StatusFound)
	return nil
}

// Show renders the detail page for one listing.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) error {
	l, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return view.NewHTTPError(http.StatusNotFound, "Listing not found!")
		}
		return err
	}
	return h.view.Render(w, r, http.StatusOK, "detail.html", l)
}

// Edit renders the edit form, prefilled with the current values.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) error {
	l, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return view.NewHTTPError(http.StatusNotFound, "Listing not found!")
		}
		return err
	}
	return h.view.Render(w, r, http.StatusOK, "edit.html", l)
}

// Update validates the payload and overwrites the listing's mutable
// fields. Last write wins on concurrent edits.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	form, errs := Validate(inputFromRequest(r))
	if len(errs) > 0 {
		return view.NewHTTPError(http.StatusBadRequest, JoinErrors(errs))
	}

	if err := h.store.UpdateByID(r.Context(), chi.URLParam(r, "id"), form); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return view.NewHTTPError(http.StatusNotFound, "Listing not found!")
		}
		return err
	}

	session.FromContext(r.Context()).AddFlash(session.FlashSuccess, "Listing Updated!")
	http.Redirect(w, r, "/listings", http.StatusFound)
	return nil
}

// Delete removes a listing.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.store.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return view.NewHTTPError(http.StatusNotFound, "Listing not found!")
		}
		return err
	}

	session.FromContext(r.Context()).AddFlash(session.FlashSuccess, "Listing Deleted!")
	http.Redirect(w, r, "/listings", http.StatusFound)
	return nil
}

// Search renders listings matching the submitted criteria exactly.
// Equality only: no substring or range matching.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	var filter models.SearchFilter
	if loc := strings.TrimSpace(r.FormValue("location")); loc != "" {
		filter.Location = &loc
	}
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return view.NewHTTPError(http.StatusBadRequest, "price must be a number")
		}
		filter.Price = &price
	}

	results, err := h.store.Search(r.Context(), filter)
	if err != nil {
		return err
	}
	return h.view.Render(w, r, http.StatusOK, "search.html", results)
}
