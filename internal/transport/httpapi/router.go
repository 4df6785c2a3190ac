// Package httpapi exposes the catalog over HTTP with a JSON envelope.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/murkotick/catalog-service/internal/app/catalog/queries/get_entity"
	"github.com/murkotick/catalog-service/internal/app/catalog/queries/list_entities"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/add_translation"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/create_entity"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/delete_entity"
	"github.com/murkotick/catalog-service/internal/pkg/langs"
)

// Deps are the application handlers and health targets behind the routes.
type Deps struct {
	List      *list_entities.Handler
	Get       *get_entity.Handler
	Create    *create_entity.Interactor
	Translate *add_translation.Interactor
	Delete    *delete_entity.Interactor

	Store Pinger
	// Cache may be nil when caching is disabled.
	Cache Pinger
}

// Options configure the middleware chain.
type Options struct {
	Logger         *slog.Logger
	Development    bool
	RequestTimeout time.Duration
	Languages      *langs.Negotiator
	JWTSecret      []byte
	AdminRoles     []string
	WriteRateLimit float64
	WriteRateBurst int
}

// NewRouter builds the HTTP handler. Middleware order: request id, real
// ip, request log, recoverer, timeout, then per catalog route kind and
// language, and for writes auth and rate limiting.
func NewRouter(d Deps, o Options) http.Handler {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := o.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	negotiator := o.Languages
	if negotiator == nil {
		// "en" always parses, so the error is impossible here.
		negotiator, _ = langs.NewNegotiator(nil, "en")
	}

	catalog := &Catalog{
		list:      d.List,
		get:       d.Get,
		create:    d.Create,
		translate: d.Translate,
		remove:    d.Delete,
		errs:      errorWriter{logger: logger, dev: o.Development},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger, o.Development))
	r.Use(Timeout(timeout))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusNotFound, "notFound")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "methodNotAllowed")
	})

	r.Method(http.MethodGet, "/healthz", health{store: d.Store, cache: d.Cache, logger: logger})

	r.Route("/catalog/{kind}", func(r chi.Router) {
		r.Use(resolveKind)
		r.Use(Language(negotiator))

		r.Get("/", catalog.listEntities)
		r.Get("/{id}", catalog.getEntity)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(o.JWTSecret, o.AdminRoles, logger))
			r.Use(RateLimit(o.WriteRateLimit, o.WriteRateBurst, logger))

			r.Post("/", catalog.createEntity)
			r.Post("/{id}/translations", catalog.addTranslation)
			r.Delete("/{id}", catalog.deleteEntity)
		})
	})

	return r
}
