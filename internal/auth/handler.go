package auth

import (
	"net/http"

	"github.com/wanderstay/wanderstay/internal/session"
	"github.com/wanderstay/wanderstay/internal/store"
	"github.com/wanderstay/wanderstay/internal/view"
)

// Handler holds the signup/login/logout HTTP handlers.
type Handler struct {
	auth     *Authenticator
	sessions *session.Manager
	view     *view.Renderer
}

func NewHandler(a *Authenticator, sessions *session.Manager, v *view.Renderer) *Handler {
	return &Handler{auth: a, sessions: sessions, view: v}
}

// ShowSignup renders the registration form.
func (h *Handler) ShowSignup(w http.ResponseWriter, r *http.Request) error {
	return h.view.Render(w, r, http.StatusOK, "signup.html", nil)
}

// Signup registers a new account and logs it in immediately. Failures
// (taken username, missing fields) flash an error and bounce back to the
// listings page, like the login flow.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) error {
	sess := session.FromContext(r.Context())
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	u, err := h.auth.Register(r.Context(), username, email, password)
	if err != nil {
		switch err {
		case store.ErrUsernameTaken, ErrUsernameRequired, ErrPasswordRequired:
			sess.AddFlash(session.FlashError, err.Error())
			http.Redirect(w, r, "/listings", http.StatusFound)
			return nil
		}
		return err
	}

	sess.SetUser(h.auth.Serialize(u))
	sess.AddFlash(session.FlashSuccess, "Welcome to Wanderstay!")
	http.Redirect(w, r, "/listings", http.StatusFound)
	return nil
}

// ShowLogin renders the login form.
func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) error {
	return h.view.Render(w, r, http.StatusOK, "login.html", nil)
}

// Login authenticates a username/password pair and establishes the
// session. Bad credentials flash an error and redirect back to /login;
// no session is established.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	sess := session.FromContext(r.Context())

	u, err := h.auth.Authenticate(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if err == ErrInvalidCredentials {
			sess.AddFlash(session.FlashError, "Invalid username or password")
			http.Redirect(w, r, "/login", http.StatusFound)
			return nil
		}
		return err
	}

	sess.SetUser(h.auth.Serialize(u))
	sess.AddFlash(session.FlashSuccess, "Successfully logged in!")
	http.Redirect(w, r, "/listings", http.StatusFound)
	return nil
}

// Logout destroys the session and redirects home. The goodbye flash
// rides on the replacement anonymous session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) error {
	h.sessions.Destroy(w, r)
	session.FromContext(r.Context()).AddFlash(session.FlashSuccess, "Successfully logged out!")
	http.Redirect(w, r, "/listings", http.StatusFound)
	return nil
}
