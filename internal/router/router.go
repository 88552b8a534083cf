package router

import (
	"net/http"

	_ "medicine-tracker/docs"
	mem "medicine-tracker/internal/adapters/storage/memory"
	"medicine-tracker/internal/domain/tracker"
	"medicine-tracker/internal/metrics"
	"medicine-tracker/internal/middleware"
	"medicine-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, se arma un tracker in-memory (modo dev).
	Service *tracker.Service

	// Reminders expone los contadores del scheduler en /metrics. Puede ser nil.
	Reminders metrics.ReminderCounter

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggerContext(log))
	r.Use(middleware.RequestLog)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	svc := opts.Service
	if svc == nil {
		svc = tracker.NewService(mem.NewMedicationsRepo(), mem.NewTakenStore(), tracker.Options{SkipExpired: true, Logger: log})
	}

	tracker.RegisterRoutes(r, svc)

	r.Get("/metrics", metrics.Handler(svc, opts.Reminders))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
