package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/category"
	"github.com/SergeyParamoshkin/blog/internal/database"
	"github.com/SergeyParamoshkin/blog/internal/logger"
	"github.com/SergeyParamoshkin/blog/internal/metrics"
)

type App struct {
	sugarLogger *zap.SugaredLogger
	db          *gorm.DB
	metrics     *metrics.HTTP

	Articles   *article.API
	Categories *category.API
}

func New(sugar *zap.SugaredLogger, db *gorm.DB, m *metrics.HTTP) *App {
	categories := category.NewStore(db)

	return &App{
		sugarLogger: sugar,
		db:          db,
		metrics:     m,
		Articles:    article.NewAPI(article.NewStore(db), categories),
		Categories:  category.NewAPI(categories),
	}
}

// Router builds the public API router.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(a.sugarLogger))
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("root."))
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Debugw("ping with middle")
		_, err := w.Write([]byte("pong"))
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	// RESTy routes for "articles" and "categories" resources
	r.Route("/articles", a.Articles.Routes)
	r.Route("/categories", a.Categories.Routes)

	return r
}

// DiagRouter serves metrics and health checks on the diagnostics port.
func (a *App) DiagRouter(metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, a.db); err != nil {
			a.sugarLogger.Warnw("health check failed", "error", err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

			return
		}

		_, err := w.Write([]byte("ok"))
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	return r
}
