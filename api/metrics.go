package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName       = "board-api"
	mutationSpanName = "board.mutation"
)

// mutationMetrics collects per-request timings for one board mutation
// and emits a span plus a structured log event when the request ends.
type mutationMetrics struct {
	logger *log.Logger
	span   trace.Span
	route  string
	start  time.Time

	decodeDuration time.Duration
	mutateDuration time.Duration
	errorStage     string
}

func newMutationMetrics(ctx context.Context, logger *log.Logger, route string) (*mutationMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, mutationSpanName,
		trace.WithAttributes(attribute.String("http.route", route)))
	m := &mutationMetrics{
		logger: logger,
		span:   span,
		route:  route,
		start:  time.Now(),
	}
	return m, spanCtx
}

func (m *mutationMetrics) ObserveDecode(d time.Duration) {
	if d <= 0 {
		return
	}
	m.decodeDuration = d
}

func (m *mutationMetrics) ObserveMutate(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mutateDuration = d
}

func (m *mutationMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *mutationMetrics) Log(status int, err error) {
	if m == nil {
		return
	}
	total := time.Since(m.start)

	m.span.SetAttributes(
		attribute.Int("http.status_code", status),
		attribute.Float64("board.total_ms", durationToMillis(total)),
	)
	if m.decodeDuration > 0 {
		m.span.SetAttributes(attribute.Float64("board.decode_ms", durationToMillis(m.decodeDuration)))
	}
	if m.mutateDuration > 0 {
		m.span.SetAttributes(attribute.Float64("board.mutate_ms", durationToMillis(m.mutateDuration)))
	}
	if m.errorStage != "" {
		m.span.SetAttributes(attribute.String("board.error_stage", m.errorStage))
	}
	if err != nil {
		m.span.RecordError(err)
		m.span.SetStatus(codes.Error, err.Error())
	} else {
		m.span.SetStatus(codes.Ok, "")
	}
	m.span.End()

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"route":    m.route,
		"status":   status,
		"total_ms": durationToMillis(total),
	}
	if m.decodeDuration > 0 {
		fields["decode_ms"] = durationToMillis(m.decodeDuration)
	}
	if m.mutateDuration > 0 {
		fields["mutate_ms"] = durationToMillis(m.mutateDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	if sc := m.span.SpanContext(); sc.HasTraceID() {
		fields["trace_id"] = sc.TraceID().String()
	}
	m.logger.WithFields(fields).Info("board.request.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
