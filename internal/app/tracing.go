package app

import (
	"context"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// logSpanProcessor writes finished spans to the debug log
type logSpanProcessor struct {
	logger *logrus.Logger
}

func (p logSpanProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

func (p logSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := logrus.Fields{
		"span":        s.Name(),
		"trace_id":    s.SpanContext().TraceID().String(),
		"duration_ms": s.EndTime().Sub(s.StartTime()).Milliseconds(),
	}
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}
	p.logger.WithFields(fields).Debug("Span finished")
}

func (p logSpanProcessor) Shutdown(ctx context.Context) error   { return nil }
func (p logSpanProcessor) ForceFlush(ctx context.Context) error { return nil }

// provideTracerProvider installs the global tracer provider. Spans are
// only sampled when TRACING_ENABLED is set.
func provideTracerProvider(cfg *config.Config, logger *logrus.Logger) (*sdktrace.TracerProvider, func()) {
	sampler := sdktrace.NeverSample()
	if cfg.TracingEnabled {
		sampler = sdktrace.AlwaysSample()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithSpanProcessor(logSpanProcessor{logger: logger}),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Warn("Failed to shut down tracer provider")
		}
	}
	return tp, cleanup
}
