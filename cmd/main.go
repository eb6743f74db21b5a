package main

//
//  @title           Coleta-B3 API
//  @version         1.0
//  @description     B3 COTAHIST ingestion and market reporting service.
//  @termsOfService  https://github.com/DaniloVitorinoPessoa/Coleta-B3
//  @contact.name    API Support
//  @contact.url     https://github.com/DaniloVitorinoPessoa/Coleta-B3
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        ativos
//  @tag.description Classified instrument registry
//
//  @tag.name        cotacoes
//  @tag.description Daily quote history and period statistics
//
//  @tag.name        dividendos
//  @tag.description Corporate-action cash events
//
//  @tag.name        carteira
//  @tag.description Portfolio allocation dashboard
//
//  @tag.name        resumo
//  @tag.description Ingested-data summary
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/config"
	_ "github.com/DaniloVitorinoPessoa/Coleta-B3/docs" // swagger docs
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/app"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/ingestion"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/storage"
)

// runIngest executes one ingestion pass: download the year archive, parse
// it, select the target business day and persist quotes and dividends.
func runIngest(ctx context.Context, cfg config.Config, dateOverride string) error {
	var opts []ingestion.Option
	if dateOverride != "" {
		target, err := time.ParseInLocation("2006-01-02", dateOverride, time.UTC)
		if err != nil {
			return errors.New("invalid --date, expected YYYY-MM-DD")
		}
		opts = append(opts, ingestion.WithTargetDate(target))
	}
	opts = append(opts, ingestion.WithDividendSource(ingestion.StaticDividendSource{}))

	db, err := app.InitPostgres(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	repo := storage.NewRepository(db)
	fetcher := ingestion.NewFetcher(cfg.Feed)
	pipeline := ingestion.NewPipeline(repo, fetcher, opts...)

	return pipeline.Run(ctx)
}

// runAPI starts the HTTP server and blocks until an OS signal or a server
// failure, then shuts down gracefully.
func runAPI(ctx context.Context, cfg config.Config, port string) error {
	router, cleanup, err := app.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-quit:
			logger.L().Info().Msg("shutting down server")
		case <-gctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// main is the entry point.
//
// Modes (selected via --mode flag):
//   - ingest: One-shot COTAHIST ingestion for the previous business day.
//   - api:    REST API exposing the ingested data.
//
// Flags:
//   - --mode: Execution mode ("ingest" or "api"). Default: "ingest".
//   - --date: Target business day override, YYYY-MM-DD (ingest mode).
//   - --port: Port for the API server. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("config load error")
	}

	mode := flag.String("mode", "ingest", "Mode: ingest or api")
	date := flag.String("date", "", "Target business day override (YYYY-MM-DD)")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Msg("running ingestion")
		if err := runIngest(ctx, cfg, *date); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")
		if err := runAPI(ctx, cfg, *port); err != nil {
			logger.L().Fatal().Err(err).Msg("server error")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
