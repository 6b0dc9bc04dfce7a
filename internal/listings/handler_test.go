package listings_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderstay/wanderstay/internal/listings"
	"github.com/wanderstay/wanderstay/internal/models"
	"github.com/wanderstay/wanderstay/internal/session"
	"github.com/wanderstay/wanderstay/internal/store"
	"github.com/wanderstay/wanderstay/internal/view"
)

type fakeStore struct {
	records map[string]models.Listing
	inserts int

	lastFilter models.SearchFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]models.Listing)}
}

func (f *fakeStore) Insert(_ context.Context, l *models.Listing) (string, error) {
	f.inserts++
	l.ID = primitive.NewObjectID()
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	f.records[l.ID.Hex()] = *l
	return l.ID.Hex(), nil
}

func (f *fakeStore) FindAll(context.Context) ([]models.Listing, error) {
	var all []models.Listing
	for _, l := range f.records {
		all = append(all, l)
	}
	return all, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*models.Listing, error) {
	l, ok := f.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &l, nil
}

func (f *fakeStore) UpdateByID(_ context.Context, id string, form models.ListingForm) error {
	l, ok := f.records[id]
	if !ok {
		return store.ErrNotFound
	}
	l.Title = form.Title
	l.Description = form.Description
	l.Image = form.Image
	l.Price = form.Price
	l.Location = form.Location
	l.Country = form.Country
	f.records[id] = l
	return nil
}

func (f *fakeStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) Search(_ context.Context, filter models.SearchFilter) ([]models.Listing, error) {
	f.lastFilter = filter
	var matches []models.Listing
	for _, l := range f.records {
		if filter.Location != nil && l.Location != *filter.Location {
			continue
		}
		if filter.Price != nil && l.Price != *filter.Price {
			continue
		}
		matches = append(matches, l)
	}
	return matches, nil
}

func setup(t *testing.T) (*fakeStore, http.Handler, *session.Session) {
	t.Helper()
	v, err := view.New()
	if err != nil {
		t.Fatalf("view.New() error: %v", err)
	}

	fs := newFakeStore()
	h := listings.NewHandler(fs, v)
	sess := &session.Session{ID: "test", ExpiresAt: time.Now().Add(time.Hour)}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(session.NewContext(req.Context(), sess)))
		})
	})
	r.Get("/listings", v.Wrap(h.Index))
	r.Post("/listings", v.Wrap(h.Create))
	r.Post("/listings/search", v.Wrap(h.Search))
	r.Get("/listings/{id}", v.Wrap(h.Show))
	r.Put("/listings/{id}", v.Wrap(h.Update))
	r.Delete("/listings/{id}", v.Wrap(h.Delete))
	return fs, r, sess
}

func listingForm(title string) url.Values {
	return url.Values{
		"listing[title]":       {title},
		"listing[description]": {"A quiet cabin in the woods"},
		"listing[image]":       {"https://example.com/cabin.jpg"},
		"listing[price]":       {"120"},
		"listing[location]":    {"Asheville"},
		"listing[country]":     {"USA"},
	}
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreateThenShowRoundTrip(t *testing.T) {
	fs, srv, sess := setup(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, formRequest(http.MethodPost, "/listings", listingForm("Cozy Cabin")))

	if rec.Code != http.StatusFound {
		t.Fatalf("create status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/listings" {
		t.Errorf("create redirect = %q, want /listings", loc)
	}
	if fs.inserts != 1 {
		t.Fatalf("insert count = %d, want 1", fs.inserts)
	}
	if success, _ := sess.PopFlashes(); len(success) != 1 || success[0] != "New Listing Created!" {
		t.Errorf("flash = %v, want [New Listing Created!]", success)
	}

	var id string
	for k, l := range fs.records {
		id = k
		if l.Title != "Cozy Cabin" || l.Price != 120 || l.Location != "Asheville" || l.Country != "USA" {
			t.Errorf("stored listing = %+v, does not match submitted fields", l)
		}
		if l.ID.IsZero() {
			t.Error("stored listing has zero id")
		}
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("show status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Cozy Cabin") {
		t.Error("detail page missing listing title")
	}
}

func TestCreateInvalidPayloadNeverTouchesStore(t *testing.T) {
	fs, srv, _ := setup(t)

	form := listingForm("Cozy Cabin")
	form.Del("listing[title]")
	form.Set("listing[price]", "-3")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, formRequest(http.MethodPost, "/listings", form))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if fs.inserts != 0 {
		t.Errorf("insert count = %d, want 0", fs.inserts)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "title is required") || !strings.Contains(body, "price must be non-negative") {
		t.Errorf("error page missing aggregated messages: %s", body)
	}
}

func TestUpdateMissingListing(t *testing.T) {
	_, srv, _ := setup(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, formRequest(http.MethodPut, "/listings/"+primitive.NewObjectID().Hex(), listingForm("Anything")))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteThenShowIsNotFound(t *testing.T) {
	fs, srv, sess := setup(t)

	l := &models.Listing{Title: "Doomed", Description: "x", Price: 1, Location: "y", Country: "z"}
	id, _ := fs.Insert(context.Background(), l)
	fs.inserts = 0

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/listings/"+id, nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("delete status = %d, want 302", rec.Code)
	}
	if success, _ := sess.PopFlashes(); len(success) != 1 || success[0] != "Listing Deleted!" {
		t.Errorf("flash = %v, want [Listing Deleted!]", success)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/"+id, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("show after delete status = %d, want 404", rec.Code)
	}
}

func TestSearchMatchesExactlyOnly(t *testing.T) {
	fs, srv, _ := setup(t)

	seed := []models.Listing{
		{Title: "Paris Flat", Description: "x", Price: 100, Location: "Paris", Country: "France"},
		{Title: "Paris Loft", Description: "x", Price: 200, Location: "Paris", Country: "France"},
		{Title: "London Flat", Description: "x", Price: 100, Location: "London", Country: "UK"},
		{Title: "Parisian Style", Description: "x", Price: 100, Location: "Parisian Quarter", Country: "France"},
	}
	for i := range seed {
		fs.Insert(context.Background(), &seed[i])
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, formRequest(http.MethodPost, "/listings/search", url.Values{
		"location": {"Paris"},
		"price":    {"100"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d, want 200", rec.Code)
	}
	if fs.lastFilter.Location == nil || *fs.lastFilter.Location != "Paris" {
		t.Errorf("filter location = %v, want Paris", fs.lastFilter.Location)
	}
	if fs.lastFilter.Price == nil || *fs.lastFilter.Price != 100 {
		t.Errorf("filter price = %v, want 100", fs.lastFilter.Price)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Paris Flat") {
		t.Error("exact match missing from results")
	}
	for _, excluded := range []string{"Paris Loft", "London Flat", "Parisian Style"} {
		if strings.Contains(body, excluded) {
			t.Errorf("results include %q, want exact matches only", excluded)
		}
	}
}

func TestIndexListsAll(t *testing.T) {
	fs, srv, _ := setup(t)
	for _, title := range []string{"One", "Two"} {
		fs.Insert(context.Background(), &models.Listing{Title: title, Description: "d", Price: 5, Location: "l", Country: "c"})
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "One") || !strings.Contains(body, "Two") {
		t.Error("index page missing listings")
	}
}
