package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/estate/internal/estate/service"
	"github.com/aussiebroadwan/estate/internal/estate/session"
	"github.com/aussiebroadwan/estate/internal/estate/view"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	*Pages
	AuthService *service.AuthService
}

// RequireAnonymous sends signed-in visitors home instead of showing the
// login and registration forms.
func RequireAnonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()).Current(); ok {
			redirect(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	page := h.base(w, r)
	page.Title = "Register"
	h.render(w, r, view.Register, page)
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		addNotice(w, r, danger("All fields are required."))
		redirect(w, r, "/register")
		return
	}

	u, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Username: r.PostForm.Get("username"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	})
	switch {
	case errors.Is(err, service.ErrValidation):
		addNotice(w, r, danger("All fields are required."))
		redirect(w, r, "/register")
		return
	case errors.Is(err, service.ErrDuplicateAccount):
		addNotice(w, r, danger("Username or Email already exists."))
		redirect(w, r, "/register")
		return
	case err != nil:
		h.fail(w, r, "register user", err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", u.ID)
	addNotice(w, r, success("Registration successful! Please log in."))
	redirect(w, r, "/login")
}

func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	page := h.base(w, r)
	page.Title = "Login"
	h.render(w, r, view.Login, page)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		addNotice(w, r, danger("Login failed. Check your email and password."))
		redirect(w, r, "/login")
		return
	}

	u, err := h.AuthService.Login(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Error("login failed", "error", err)
		}
		addNotice(w, r, danger("Login failed. Check your email and password."))
		redirect(w, r, "/login")
		return
	}

	if err := session.FromContext(r.Context()).Start(r.Context(), u); err != nil {
		h.fail(w, r, "start session", err)
		return
	}

	log.Info("user logged in", "user_id", u.ID)
	addNotice(w, r, success("Welcome back, "+u.Username+"!"))
	redirect(w, r, "/")
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).End(r.Context())
	addNotice(w, r, info("You have been logged out."))
	redirect(w, r, "/")
}
