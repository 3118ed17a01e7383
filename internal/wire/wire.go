// internal/wire/wire.go
package wire

import (
	"airline-api/internal/adaptor"
	"airline-api/internal/data/repository"
	"airline-api/internal/usecase"
	"airline-api/pkg/clock"
	"airline-api/pkg/middleware"
	"airline-api/pkg/ratelimit"
	"airline-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP router
type App struct {
	Router *chi.Mux
}

// Deps are the process-wide collaborators built in main.
type Deps struct {
	Repo    *repository.Repository
	DB      adaptor.Pinger
	Config  *utils.Config
	Clock   clock.Clock
	Limiter ratelimit.Store // nil disables rate limiting
	Logger  *zap.Logger
}

// Wiring builds services, handlers and routes
func Wiring(deps Deps) *App {
	service := usecase.NewService(deps.Repo, deps.Config, deps.Clock, deps.Logger)
	handler := adaptor.NewHandler(service, deps.DB, deps.Logger)

	return &App{
		Router: setupRouter(handler, deps.Limiter, deps.Logger),
	}
}

func setupRouter(handler *adaptor.Handler, limiter ratelimit.Store, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Liveness endpoints skip the rate limiter
	r.Get("/ping", handler.System.Ping)
	r.Get("/health", handler.System.Health)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter, logger.With(zap.String("middleware", "ratelimit"))))
		}

		wireCatalog(r, handler.Catalog)
		wireFlight(r, handler.Flight)
		wireBooking(r, handler.Booking)
	})

	return r
}
