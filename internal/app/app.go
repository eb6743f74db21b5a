package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/config"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/api"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/service"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/storage"
)

// InitializeApp wires the reporting API: database, repository, service,
// handlers, router and health probes. It returns the configured router, a
// cleanup function for graceful shutdown, and any initialization error.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewRepository(db)
	svc := service.NewReportsService(repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
