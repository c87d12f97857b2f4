package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "mygene/internal/adapter/http"
	. "mygene/pkg/config"
	. "mygene/pkg/tracing"
)

func main() {
	ctx := context.Background()

	logger, err := NewLokiLogger("mygene", lokiURL())

	if err != nil {
		log.Fatal("Failed to initialize Loki logger:", err)
	}

	defer logger.Sync()

	telemetry, err := InitTelemetry(TelemetryConfig{
		ServiceName:    "mygene",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   otlpEndpoint(),
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(ctx)

	metrics := NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		config := GetDefaultConfig()

		if os.Getenv("GIN_MODE") == "release" {
			config.Environment = "production"
			config.EnforceHTTPS = true
		}

		api.StartServerWithConfig(metrics, logger, config)
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}

func lokiURL() string {
	if url := os.Getenv("LOKI_URL"); url != "" {
		return url
	}
	return "http://localhost:3100"
}

func otlpEndpoint() string {
	if endpoint := os.Getenv("OTLP_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return "localhost:4317"
}
