package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"building-portal/internal/config"
	"building-portal/internal/database"
	"building-portal/internal/event"
	"building-portal/internal/handler"
	"building-portal/internal/middleware"
	"building-portal/internal/service"
	"building-portal/pkg/apierror"
)

func New(
	cfg *config.Config,
	db *database.DB,
	auth *service.AuthService,
	bus event.Bus,
	sessionHandler *handler.SessionHandler,
	occupantHandler *handler.OccupantHandler,
	maintenanceHandler *handler.MaintenanceHandler,
	auditHandler *handler.AuditHandler,
) http.Handler {
	r := chi.NewRouter()
	pipe := middleware.NewPipeline(cfg.IsDevelopment())
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.NotFound(pipe.Wrap(func(http.ResponseWriter, *http.Request) error {
		return apierror.NotFound("resource not found")
	}))
	r.MethodNotAllowed(pipe.Wrap(func(_ http.ResponseWriter, r *http.Request) error {
		return apierror.MethodNotAllowed(r.Method)
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Handle("/sessions", pipe.Wrap(sessionHandler.Create,
			middleware.AllowMethods(http.MethodPost),
			middleware.Audit(bus, "session"),
		))
		api.Get("/sessions/current", pipe.Wrap(sessionHandler.Current,
			middleware.RequireSession(auth),
		))
		// Logout skips session enforcement on purpose: an expired pair can
		// still be deleted as long as both secrets match the stored row.
		api.Delete("/sessions/current", pipe.Wrap(sessionHandler.Delete,
			middleware.Audit(bus, "session"),
		))

		api.Handle("/occupants", pipe.Wrap(resourceDispatch(
			occupantHandler.List,
			occupantHandler.Create,
			occupantHandler.Update,
			occupantHandler.Delete,
		),
			middleware.AllowMethods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete),
			middleware.RequireSession(auth),
			middleware.Audit(bus, "occupant"),
		))

		api.Handle("/maintenance-requests", pipe.Wrap(resourceDispatch(
			maintenanceHandler.List,
			maintenanceHandler.Create,
			maintenanceHandler.Update,
			maintenanceHandler.Delete,
		),
			middleware.AllowMethods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete),
			middleware.RequireSession(auth),
			middleware.Audit(bus, "maintenance"),
		))

		api.Get("/audit", pipe.Wrap(auditHandler.List,
			middleware.RequireSession(auth),
		))
	})

	return r
}

// resourceDispatch fans a single collection route out to the CRUD handlers
// by method. The surrounding decorator chain runs once per request no
// matter which handler is hit.
func resourceDispatch(list, create, update, del middleware.HandlerFunc) middleware.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		switch r.Method {
		case http.MethodGet:
			return list(w, r)
		case http.MethodPost:
			return create(w, r)
		case http.MethodPut:
			return update(w, r)
		case http.MethodDelete:
			return del(w, r)
		default:
			return apierror.MethodNotAllowed(r.Method)
		}
	}
}
