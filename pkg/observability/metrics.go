// Package observability wires OpenTelemetry metrics with a Prometheus exporter.
package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "go-careers-backend"

// InitMetrics installs a global meter provider backed by a Prometheus exporter.
// It returns the /metrics handler and a shutdown function for graceful exit.
func InitMetrics() (http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	return promhttp.Handler(), provider.Shutdown, nil
}

// Recorder holds the counters for the candidate and application workflows.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	candidateUpserts metric.Int64Counter
	applications     metric.Int64Counter
	rejectedUploads  metric.Int64Counter
	submitAttempts   metric.Int64Histogram
}

// NewRecorder creates instruments on the global meter provider.
func NewRecorder() (*Recorder, error) {
	return NewRecorderWithMeter(otel.Meter(meterName))
}

// NewRecorderWithMeter creates instruments on the given meter.
func NewRecorderWithMeter(meter metric.Meter) (*Recorder, error) {
	candidateUpserts, err := meter.Int64Counter("careers.candidates.upserts",
		metric.WithDescription("Candidate profile upserts by result (created, updated)"))
	if err != nil {
		return nil, err
	}
	applications, err := meter.Int64Counter("careers.applications",
		metric.WithDescription("Application submissions by outcome"))
	if err != nil {
		return nil, err
	}
	rejectedUploads, err := meter.Int64Counter("careers.resumes.rejected",
		metric.WithDescription("Resume uploads rejected by reason"))
	if err != nil {
		return nil, err
	}
	submitAttempts, err := meter.Int64Histogram("careers.applications.tx_attempts",
		metric.WithDescription("Transaction attempts needed per submission"))
	if err != nil {
		return nil, err
	}

	return &Recorder{
		candidateUpserts: candidateUpserts,
		applications:     applications,
		rejectedUploads:  rejectedUploads,
		submitAttempts:   submitAttempts,
	}, nil
}

// CandidateUpserted counts a registry write.
func (r *Recorder) CandidateUpserted(ctx context.Context, created bool) {
	if r == nil {
		return
	}
	result := "updated"
	if created {
		result = "created"
	}
	r.candidateUpserts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// ApplicationOutcome counts a submission by outcome: accepted, duplicate, candidate_not_found, job_not_found, error.
func (r *Recorder) ApplicationOutcome(ctx context.Context, outcome string) {
	if r == nil {
		return
	}
	r.applications.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// ResumeRejected counts an upload refused before storage.
func (r *Recorder) ResumeRejected(ctx context.Context, reason string) {
	if r == nil {
		return
	}
	r.rejectedUploads.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// SubmitAttempts records how many transaction attempts a submission used.
func (r *Recorder) SubmitAttempts(ctx context.Context, attempts int) {
	if r == nil || attempts <= 0 {
		return
	}
	r.submitAttempts.Record(ctx, int64(attempts))
}
