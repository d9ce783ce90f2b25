package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const meterName = "github.com/invoicecreator/invoice-creator"

type AppMetrics struct {
	authRegisterCounter   metric.Int64Counter
	authLoginCounter      metric.Int64Counter
	authLogoutCounter     metric.Int64Counter
	identityLookupCounter metric.Int64Counter
	authOpDuration        metric.Float64Histogram
	validationCounter     metric.Int64Counter
	sessionStoreCounter   metric.Int64Counter
	repositoryOpsCounter  metric.Int64Counter
	healthCheckCounter    metric.Int64Counter
	healthCheckDuration   metric.Float64Histogram
	toolCommandRuns       metric.Int64Counter
}

var (
	metricsMu  sync.RWMutex
	appMetrics *AppMetrics
)

// NewAppMetrics registers every instrument on meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var firstErr error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return c
	}
	seconds := func(name, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithUnit("s"), metric.WithDescription(desc))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return h
	}

	m := &AppMetrics{
		authRegisterCounter:   counter("auth.register.attempts", "Registration attempts by outcome"),
		authLoginCounter:      counter("auth.login.attempts", "Authentication attempts by outcome"),
		authLogoutCounter:     counter("auth.logout.attempts", "Identity clear calls by outcome"),
		identityLookupCounter: counter("auth.identity.lookups", "Session identity lookups by outcome"),
		authOpDuration:        seconds("auth.operation.duration", "Duration of auth service operations"),
		validationCounter:     counter("validation.outcomes", "Form validation results"),
		sessionStoreCounter:   counter("session.store.operations", "Session store operations"),
		repositoryOpsCounter:  counter("repository.operations", "Repository operations"),
		healthCheckCounter:    counter("health.check.results", "Dependency probe results"),
		healthCheckDuration:   seconds("health.check.duration", "Dependency probe latency"),
		toolCommandRuns:       counter("tool.command.runs", "Operator CLI command runs"),
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return m, nil
}

// SetAppMetrics installs m as the process-wide instrument set. Passing nil
// turns every Record helper into a no-op.
func SetAppMetrics(m *AppMetrics) {
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()
}

func current() *AppMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

// Tracer returns the tracer used for application spans.
func Tracer() trace.Tracer {
	return otel.Tracer(meterName)
}

func RecordAuthRegister(ctx context.Context, status string) {
	if m := current(); m != nil {
		m.authRegisterCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func RecordAuthLogin(ctx context.Context, status string) {
	if m := current(); m != nil {
		m.authLoginCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func RecordAuthLogout(ctx context.Context, status string) {
	if m := current(); m != nil {
		m.authLogoutCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func RecordIdentityLookup(ctx context.Context, outcome string) {
	if m := current(); m != nil {
		m.identityLookupCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordAuthOperationDuration(ctx context.Context, operation, status string, d time.Duration) {
	if m := current(); m != nil {
		m.authOpDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		))
	}
}

func RecordValidationOutcome(ctx context.Context, form, outcome string) {
	if m := current(); m != nil {
		m.validationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("form", form),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordSessionStoreOperation(ctx context.Context, backend, operation, status string) {
	if m := current(); m != nil {
		m.sessionStoreCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("backend", backend),
			attribute.String("operation", operation),
			attribute.String("status", status),
		))
	}
}

func RecordRepositoryOperation(ctx context.Context, repository, operation, status string) {
	if m := current(); m != nil {
		m.repositoryOpsCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("repository", repository),
			attribute.String("operation", operation),
			attribute.String("status", status),
		))
	}
}

func RecordHealthCheckResult(ctx context.Context, check, outcome string) {
	if m := current(); m != nil {
		m.healthCheckCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("check", check),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordHealthCheckDuration(ctx context.Context, check string, d time.Duration) {
	if m := current(); m != nil {
		m.healthCheckDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("check", check)))
	}
}

func RecordToolCommandRun(ctx context.Context, tool, command, status string) {
	if m := current(); m != nil {
		m.toolCommandRuns.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tool", tool),
			attribute.String("command", command),
			attribute.String("status", status),
		))
	}
}

// StatusFromError maps an error to the status label used across metrics.
func StatusFromError(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
