package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/estate/internal/estate/catalog"
	"github.com/aussiebroadwan/estate/internal/estate/service"
	"github.com/aussiebroadwan/estate/internal/estate/session"
	"github.com/aussiebroadwan/estate/internal/estate/store"
	"github.com/aussiebroadwan/estate/internal/estate/view"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	pages          *Pages
	Catalog        *catalog.Catalog
	Sessions       *session.Manager
	AuthService    *service.AuthService
	ContactService *service.ContactService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	views view.Renderer,
	sessions *session.Manager,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		pages:        &Pages{Views: views},
		Sessions:     sessions,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(func(req *http.Request, v any) {
			slogx.FromContext(req.Context()).Error("panic serving request", "panic", v)
		}),
		sessions.Middleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerListings()
	r.registerAuth()
	r.registerContact()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerListings() {
	h := &ListingsHandler{Pages: r.pages, Catalog: r.Catalog}
	public := httpx.RateLimitByIP(httpx.PublicLimit)

	r.Mux.Handle("GET /{$}", httpx.Chain(http.HandlerFunc(h.HandleHome), public))
	r.Mux.Handle("GET /property/{id}", httpx.Chain(http.HandlerFunc(h.HandleProperty), public))
	r.Mux.Handle("GET /search", httpx.Chain(http.HandlerFunc(h.HandleSearch), public))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Pages: r.pages, AuthService: r.AuthService}
	public := httpx.RateLimitByIP(httpx.PublicLimit)

	r.Mux.Handle("GET /register", httpx.Chain(http.HandlerFunc(h.HandleRegisterForm),
		RequireAnonymous,
		public,
	))
	r.Mux.Handle("GET /login", httpx.Chain(http.HandlerFunc(h.HandleLoginForm),
		RequireAnonymous,
		public,
	))

	// POST /register and /login - strict limits against account enumeration and brute force
	r.Mux.Handle("POST /register", httpx.Chain(http.HandlerFunc(h.HandleRegister),
		RequireAnonymous,
		httpx.RateLimitByIP(httpx.StrictLimit),
	))
	r.Mux.Handle("POST /login", httpx.Chain(http.HandlerFunc(h.HandleLogin),
		RequireAnonymous,
		httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
	))

	r.Mux.Handle("GET /logout", httpx.Chain(http.HandlerFunc(h.HandleLogout), public))
}

func (r *Router) registerContact() {
	h := &ContactHandler{ContactService: r.ContactService}
	r.Mux.Handle("POST /contact", httpx.Chain(h, httpx.RateLimitByIP(httpx.ModerateLimit)))
}

func (r *Router) registerSystem() {
	public := httpx.RateLimitByIP(httpx.PublicLimit)
	r.Mux.Handle("GET /livez", httpx.Chain(LivezHandler(r.startTime, r.buildVersion), public))
	r.Mux.Handle("GET /readyz", httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), public))
}
