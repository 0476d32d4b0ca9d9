// Blog
// ====
// A HTTP REST web service for articles and categories, stored through
// GORM in PostgreSQL or SQLite.
//
// Also pass the -routes flag to print the generated route docs:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ go run . -seed
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"name":"Tech"}' http://localhost:3333/categories
// {"id":1,"name":"Tech"}
//
// $ curl -X POST -d '{"title":"A","content":"B","category":{"id":1}}' http://localhost:3333/articles
// {"id":1,"title":"A","content":"B","createdAt":"...","updatedAt":"...","categoryId":1}
//
// $ curl 'http://localhost:3333/articles/search-after?date=2024-01-01T00:00:00'
// [{"id":1,"title":"A","content":"B","createdAt":"...","updatedAt":"...","category":{"id":1,"name":"Tech"}}]
//
// $ curl -X DELETE http://localhost:3333/articles/1
//
// $ curl http://localhost:3333/articles/1
// {"status":"Resource not found."}
//
// Metrics and health checks are served on the diag port:
// $ curl http://localhost:9999/metrics
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/docgen"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/database"
	"github.com/SergeyParamoshkin/blog/internal/fixture"
	"github.com/SergeyParamoshkin/blog/internal/logger"
	"github.com/SergeyParamoshkin/blog/internal/metrics"
	"github.com/SergeyParamoshkin/blog/internal/server"
)

const ServiceName = "blog"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(ServiceName, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync() // flushes buffer, if any

	if err := run(cfg, log); err != nil {
		log.Sugar().Errorw("exiting", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	sugar := log.Sugar()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	exporter, err := metrics.NewExporter()
	if err != nil {
		return err
	}

	app := server.New(sugar, db, metrics.NewHTTP(global.Meter(ServiceName)))
	r := app.Router()

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if cfg.Routes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/blog",
			Intro:       "Blog REST API generated docs.",
		}))

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Seed {
		seeded, err := fixture.Seed(ctx, db, article.Now())
		if err != nil {
			return err
		}
		sugar.Infow("fixtures", "seeded", seeded)
	}

	servers := []*http.Server{
		{Addr: cfg.Addr, Handler: r},
		{Addr: cfg.DiagAddr, Handler: app.DiagRouter(exporter)},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv

		g.Go(func() error {
			sugar.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}

			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				sugar.Errorw("shutdown", "addr", srv.Addr, "error", err)
			}
		}

		return nil
	})

	return g.Wait()
}
