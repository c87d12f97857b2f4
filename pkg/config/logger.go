package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LokiLogger wraps a zap logger with otelzap for trace correlation and ships
// every entry to a Loki push endpoint as a secondary sink.
type LokiLogger struct {
	Logger      *otelzap.Logger
	ServiceName string
	lokiURL     string
	httpClient  *http.Client
}

type LokiLogEntry struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

func NewLokiLogger(serviceName, lokiURL string) (*LokiLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	otelLogger := otelzap.New(zapLogger)

	return &LokiLogger{
		Logger:      otelLogger,
		ServiceName: serviceName,
		lokiURL:     lokiURL + "/loki/api/v1/push",
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

func (l *LokiLogger) Sync() error {
	return l.Logger.Sync()
}

func (l *LokiLogger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *LokiLogger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *LokiLogger) logWithTrace(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	logFields := append(fields,
		zap.String("service", l.ServiceName),
		zap.String("level", level.String()),
	)

	// otelzap adds trace_id and span_id from ctx
	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, logFields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, logFields...)
	}

	go l.SendToLokiSimple(ctx, level, msg, logFields)
}

func (l *LokiLogger) SendToLokiSimple(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	logLine := fmt.Sprintf(`{"timestamp":"%s","level":"%s","message":"%s","service":"%s"`,
		time.Now().Format(time.RFC3339Nano),
		level.String(),
		msg,
		l.ServiceName)

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		logLine += fmt.Sprintf(`,"trace_id":"%s","span_id":"%s"`,
			span.SpanContext().TraceID().String(),
			span.SpanContext().SpanID().String())
	}

	for _, field := range fields {
		switch field.Type {
		case zapcore.StringType:
			logLine += fmt.Sprintf(`,"%s":"%s"`, field.Key, field.String)
		case zapcore.Int64Type:
			logLine += fmt.Sprintf(`,"%s":%d`, field.Key, field.Integer)
		case zapcore.BoolType:
			logLine += fmt.Sprintf(`,"%s":%t`, field.Key, field.Integer == 1)
		case zapcore.DurationType:
			if field.Interface != nil {
				logLine += fmt.Sprintf(`,"%s":"%v"`, field.Key, field.Interface)
			} else {
				logLine += fmt.Sprintf(`,"%s":"0s"`, field.Key)
			}
		default:
			logLine += fmt.Sprintf(`,"%s":"%v"`, field.Key, field.Interface)
		}
	}

	logLine += "}"

	lokiEntry := LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": l.ServiceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{fmt.Sprintf("%d", time.Now().UnixNano()), logLine},
				},
			},
		},
	}

	l.sendToLokiHTTP(lokiEntry)
}

func (l *LokiLogger) sendToLokiHTTP(lokiEntry LokiLogEntry) {
	body, err := json.Marshal(lokiEntry)
	if err != nil {
		return
	}

	req, err := http.NewRequest("POST", l.lokiURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	io.ReadAll(resp.Body)
}

func LogError(ctx context.Context, logger *LokiLogger, err error, msg string, fields ...zap.Field) {
	logger.ErrorWithTrace(ctx, msg, append(fields, zap.Error(err))...)
}

func LogInfo(ctx context.Context, logger *LokiLogger, msg string, fields ...zap.Field) {
	logger.InfoWithTrace(ctx, msg, fields...)
}
