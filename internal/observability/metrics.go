package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const metricNamespace = "finitefield.org/hanko-docs"

// NavMetrics counts resolutions and config reloads. A nil *NavMetrics records
// nothing.
type NavMetrics struct {
	resolutions        metric.Int64Counter
	resolutionsEnabled bool
	reloads            metric.Int64Counter
	reloadsEnabled     bool
}

// NewNavMetrics registers the counters on meter, or the global provider's meter
// when meter is nil. Registration failures are logged and the counter is skipped.
func NewNavMetrics(meter metric.Meter, logger *zap.Logger) *NavMetrics {
	if logger == nil {
		logger = noopLogger
	}
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(metricNamespace)
	}

	resolutions, resErr := meter.Int64Counter(
		"docnav.nav.resolutions",
		metric.WithDescription("Count of navigation lookups by locale and outcome"),
	)
	if resErr != nil {
		logger.Warn("metrics: unable to register resolution counter", zap.Error(resErr))
	}
	reloads, reloadErr := meter.Int64Counter(
		"docnav.config.reloads",
		metric.WithDescription("Count of site config reload attempts by outcome"),
	)
	if reloadErr != nil {
		logger.Warn("metrics: unable to register reload counter", zap.Error(reloadErr))
	}

	return &NavMetrics{
		resolutions:        resolutions,
		resolutionsEnabled: resErr == nil,
		reloads:            reloads,
		reloadsEnabled:     reloadErr == nil,
	}
}

// Resolution records one lookup. prefix is empty when nothing matched.
func (m *NavMetrics) Resolution(ctx context.Context, prefix, outcome string) {
	if m == nil || !m.resolutionsEnabled {
		return
	}
	m.resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("locale", prefix),
		attribute.String("outcome", outcome),
	))
}

// Reload records one reload attempt.
func (m *NavMetrics) Reload(ctx context.Context, ok bool) {
	if m == nil || !m.reloadsEnabled {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "rejected"
	}
	m.reloads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
