package carttransform

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/cart-transform/internal/obs"
)

// Surfaces label which entrypoint triggered a run.
const (
	SurfaceHTTP = "http"
	SurfaceCLI  = "cli"
)

// Service wraps Run with logging, metrics and tracing. A zero Service is usable.
type Service struct {
	Logger  zerolog.Logger
	Metrics *obs.TransformMetrics
	Tracer  trace.Tracer
	Surface string
}

// Transform runs the cart scan and records what happened. Its result is identical to Run.
func (s *Service) Transform(ctx context.Context, in Input) Result {
	tracer := s.Tracer
	if tracer == nil {
		tracer = otel.Tracer("carttransform")
	}
	_, span := tracer.Start(ctx, "carttransform.Run")
	defer span.End()

	var adjusted, skipped, malformed int
	res := scan(in, func(line CartLine, outcome LineOutcome, op Operation) {
		switch outcome {
		case OutcomeAdjusted:
			adjusted++
			if s.Metrics != nil {
				pct, _ := op.Update.Price.Adjustment.PercentageDecrease.Value.Float64()
				s.Metrics.Discount.Observe(pct)
			}
		case OutcomeMalformed:
			malformed++
			s.Logger.Warn().
				Str("cart_line_id", line.ID).
				Msg("ignoring unparseable price attribute")
		default:
			skipped++
		}
	})

	if s.Metrics != nil {
		s.Metrics.Runs.WithLabelValues(s.surface()).Inc()
		s.Metrics.Lines.WithLabelValues(string(OutcomeAdjusted)).Add(float64(adjusted))
		s.Metrics.Lines.WithLabelValues(string(OutcomeSkipped)).Add(float64(skipped))
		s.Metrics.Lines.WithLabelValues(string(OutcomeMalformed)).Add(float64(malformed))
	}
	span.SetAttributes(
		attribute.Int("cart.lines", adjusted+skipped+malformed),
		attribute.Int("cart.operations", len(res.Operations)),
		attribute.Int("cart.lines.malformed", malformed),
	)
	s.Logger.Debug().
		Str("surface", s.surface()).
		Int("lines", adjusted+skipped+malformed).
		Int("operations", len(res.Operations)).
		Int("malformed", malformed).
		Msg("cart transform run")
	return res
}

func (s *Service) surface() string {
	if s.Surface == "" {
		return SurfaceHTTP
	}
	return s.Surface
}
