// Package api implements the REST surface of the site backend: public
// content listings, form intake, and the token-gated admin CRUD routes.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"
	"github.com/microcosm-cc/bluemonday"

	"github.com/switchgames/site/auth"
	"github.com/switchgames/site/catalog"
	"github.com/switchgames/site/notify"
	"github.com/switchgames/site/store"
)

//go:embed openapi.yaml
var openapiSpec []byte

// StatsSource supplies the aggregate visit and concurrent-player
// counters for the public stats endpoints.
type StatsSource interface {
	Totals() (visits, ccu int64)
}

// API holds the dependencies needed by the REST handlers.
type API struct {
	stores       *store.Stores
	verifier     *auth.Verifier
	sessions     SessionStore
	loginLimiter *loginRateLimiter
	formLimiter  *formThrottle
	audit        *auditLogger
	notifier     *notify.Dispatcher
	catalog      *catalog.Client
	stats        StatsSource
	uploadsDir   string
	sanitizer    *bluemonday.Policy
}

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events. If not set, a
// default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger, nil)
	}
}

// WithAuditTrail persists audit events alongside the structured log.
func WithAuditTrail(trail *AuditTrail) Option {
	return func(a *API) {
		if a.audit != nil {
			a.audit.trail = trail
		}
	}
}

// WithNotifier enables webhook notifications for form submissions.
func WithNotifier(d *notify.Dispatcher) Option {
	return func(a *API) { a.notifier = d }
}

// WithCatalog enables live-stat enrichment of the public game listing.
func WithCatalog(c *catalog.Client) Option {
	return func(a *API) { a.catalog = c }
}

// WithStatsSource wires the aggregate counter endpoints.
func WithStatsSource(s StatsSource) Option {
	return func(a *API) { a.stats = s }
}

// WithUploadsDir sets the directory for uploaded images.
func WithUploadsDir(dir string) Option {
	return func(a *API) { a.uploadsDir = dir }
}

// WithSessionStore overrides the default in-memory session store.
func WithSessionStore(s SessionStore) Option {
	return func(a *API) { a.sessions = s }
}

// New creates a new API instance.
func New(stores *store.Stores, verifier *auth.Verifier, opts ...Option) *API {
	a := &API{
		stores:       stores,
		verifier:     verifier,
		loginLimiter: newLoginRateLimiter(),
		formLimiter:  newFormThrottle(),
		uploadsDir:   "./uploads",
		sanitizer:    bluemonday.UGCPolicy(),
	}
	a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)), nil)
	for _, opt := range opts {
		opt(a)
	}
	if a.sessions == nil {
		a.sessions = NewMemorySessionStore()
	}
	return a
}

// Router returns a chi.Router with all API routes, intended to be
// mounted at /api.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/openapi.yaml",
		Path:    "api/docs",
	}, nil))
	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/api/openapi.yaml",
		Path:    "api/redoc",
	}, nil))

	// Public surface.
	r.Get("/games", a.PublicGames)
	r.Get("/blog/posts", a.PublicPosts)
	r.Get("/careers", a.PublicCareers)
	r.Get("/staff", a.PublicStaff)
	r.Get("/get-total-visits", a.TotalVisits)
	r.Get("/get-total-ccu", a.TotalCCU)
	r.Post("/contact", a.SubmitContact)
	r.Post("/apply", a.SubmitApplication)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", a.Login)
		r.Post("/logout", a.Logout)

		r.Group(func(r chi.Router) {
			r.Use(a.requireSession)

			r.Post("/password", a.ChangePassword)

			r.Group(func(r chi.Router) {
				r.Use(a.requireRole(store.RoleEditor))
				r.Get("/games", a.ListGames)
				r.Post("/games", a.CreateGame)
				r.Put("/games/{id}", a.UpdateGame)
				r.Delete("/games/{id}", a.DeleteGame)

				r.Get("/posts", a.ListPosts)
				r.Post("/posts", a.CreatePost)
				r.Put("/posts/{id}", a.UpdatePost)
				r.Delete("/posts/{id}", a.DeletePost)

				r.Get("/careers", a.ListCareers)
				r.Post("/careers", a.CreateCareer)
				r.Put("/careers/{id}", a.UpdateCareer)
				r.Delete("/careers/{id}", a.DeleteCareer)

				r.Get("/staff", a.ListStaff)
				r.Post("/staff", a.CreateStaffMember)
				r.Put("/staff/{id}", a.UpdateStaffMember)
				r.Delete("/staff/{id}", a.DeleteStaffMember)

				r.Post("/upload", a.Upload)
			})

			r.Group(func(r chi.Router) {
				r.Use(a.requireRole(store.RoleModerator))
				r.Get("/contacts", a.ListContacts)
				r.Post("/contacts/{id}/read", a.MarkContactRead)
				r.Delete("/contacts/{id}", a.DeleteContact)

				r.Get("/applications", a.ListApplications)
				r.Post("/applications/{id}/read", a.MarkApplicationRead)
				r.Post("/applications/{id}/status", a.SetApplicationStatus)
				r.Delete("/applications/{id}", a.DeleteApplication)
			})

			r.Group(func(r chi.Router) {
				r.Use(a.requireRole(store.RoleAdmin))
				r.Get("/audit", a.ListAudit)
			})

			r.Group(func(r chi.Router) {
				r.Use(a.requireRole(store.RoleSuperadmin))
				r.Get("/accounts", a.ListAccounts)
				r.Post("/accounts", a.CreateAccount)
				r.Put("/accounts/{id}", a.UpdateAccount)
				r.Delete("/accounts/{id}", a.DeleteAccount)
			})
		})
	})

	return r
}
