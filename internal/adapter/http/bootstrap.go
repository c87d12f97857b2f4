package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	postgresdb "mygene/internal/adapter/database/postgres"
	sqlitedb "mygene/internal/adapter/database/sqlite"

	"mygene/internal/adapter/ai"
	"mygene/internal/adapter/http/routes"
	"mygene/internal/core/port"
	"mygene/pkg"
	"mygene/pkg/config"
	"mygene/pkg/tracing"
)

func StartServer(metrics *tracing.AppMetrics, logger *config.LokiLogger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *tracing.AppMetrics, logger *config.LokiLogger, config *config.AppConfig) {
	answerer := buildAnswerer(context.Background())

	var container *Container

	if dbURL := os.Getenv("DATABASE_URL"); strings.HasPrefix(dbURL, "postgres") {
		db, err := postgresdb.NewDB()

		if err != nil {
			slog.Error("Failed to connect to postgres", "error", err)
			return
		}

		defer db.Close()

		container = NewPostgresContainer(db, answerer, logger)
	} else {
		db := sqlitedb.NewDB()
		defer db.Close()

		container = NewContainer(db, answerer, logger)
	}

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler:     container.AuthHandler,
		ProfileHandler:  container.ProfileHandler,
		QuestionHandler: container.QuestionHandler,
	}, metrics, logger, config)

	port := pkg.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", config.Environment,
		"rate_limit_enabled", config.RateLimitEnabled,
		"https_enforced", config.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}

func buildAnswerer(ctx context.Context) port.QuestionAnswerer {
	apiKey := os.Getenv("GEMINI_API_KEY")

	if apiKey == "" {
		slog.Warn("GEMINI_API_KEY not set, profile questions disabled")
		return ai.NewDisabledAnswerer()
	}

	answerer, err := ai.NewGeminiAnswerer(ctx, apiKey, os.Getenv("GEMINI_MODEL"))

	if err != nil {
		slog.Error("Failed to initialize Gemini client, profile questions disabled", "error", err)
		return ai.NewDisabledAnswerer()
	}

	return answerer
}
