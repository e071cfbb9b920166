package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics exporters accepted by InitMetrics.
const (
	MetricsNone       = "none"
	MetricsPrometheus = "prometheus"
	MetricsStdout     = "stdout"
)

// ErrUnknownExporter is returned for an unsupported exporter name.
var ErrUnknownExporter = errors.New("telemetry: unknown metrics exporter")

// Metrics is an installed meter provider.
type Metrics struct {
	// Handler serves the Prometheus scrape endpoint. It is nil for other
	// exporters.
	Handler  http.Handler
	Shutdown func(context.Context) error
}

// InitMetrics installs a global MeterProvider for exporter. Prometheus
// metrics are kept in a private registry exposed through Handler; stdout
// metrics are written to w when the provider shuts down or periodically.
func InitMetrics(ctx context.Context, serviceName, serviceVersion, exporter string, w io.Writer) (*Metrics, error) {
	if exporter == "" || exporter == MetricsNone {
		return &Metrics{Shutdown: func(context.Context) error { return nil }}, nil
	}

	res, err := newResource(ctx, serviceName, serviceVersion)
	if err != nil {
		return nil, err
	}

	var (
		reader  sdkmetric.Reader
		handler http.Handler
	)
	switch exporter {
	case MetricsPrometheus:
		reg := prometheus.NewRegistry()
		exp, err := promexporter.New(promexporter.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		reader = exp
		handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	case MetricsStdout:
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exp)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, exporter)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp)

	return &Metrics{Handler: handler, Shutdown: mp.Shutdown}, nil
}
