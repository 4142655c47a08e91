package wire

import (
	"context"
	"net/http"
	"time"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/scheduler"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds everything main needs to run the process.
type App struct {
	Router    *chi.Mux
	Scheduler *scheduler.Scheduler
}

// Wiring builds services, handlers, routes and background jobs.
func Wiring(repo *repository.Repository, db Pinger, config *utils.Config, logger *zap.Logger) (*App, error) {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	jobs, err := setupScheduler(service, config, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Router:    setupRouter(handler, service, db, config, logger),
		Scheduler: jobs,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		wireUser(r, handler.Auth, handler.User, service.Auth, logger)
		wireHotel(r, handler.Hotel, service.Auth, logger)
		wireBooking(r, handler.Booking, service.Auth, logger)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseError(w, http.StatusServiceUnavailable, "Database unavailable", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
