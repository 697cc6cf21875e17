package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "manavinverse-service"

var (
	metricsOnce       sync.Once
	repositoryOps     metric.Int64Counter
	submissionEvents  metric.Int64Counter
	sheetsSyncEvents  metric.Int64Counter
	contentEvents     metric.Int64Counter
	adminLoginEvents  metric.Int64Counter
	mediaUploadEvents metric.Int64Counter
)

func initMetrics() {
	meter := otel.Meter(meterName)
	repositoryOps, _ = meter.Int64Counter("repository_operations_total",
		metric.WithDescription("Repository operations by entity, operation and outcome"))
	submissionEvents, _ = meter.Int64Counter("contact_submission_events_total",
		metric.WithDescription("Contact submission intake outcomes"))
	sheetsSyncEvents, _ = meter.Int64Counter("sheets_sync_events_total",
		metric.WithDescription("Google Sheets sync leg outcomes by stage"))
	contentEvents, _ = meter.Int64Counter("content_events_total",
		metric.WithDescription("Content management outcomes by entity and action"))
	adminLoginEvents, _ = meter.Int64Counter("admin_login_events_total",
		metric.WithDescription("Admin login outcomes"))
	mediaUploadEvents, _ = meter.Int64Counter("media_upload_events_total",
		metric.WithDescription("Cover image upload outcomes"))
}

func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	metricsOnce.Do(initMetrics)
	repositoryOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordSubmissionEvent(ctx context.Context, outcome string) {
	metricsOnce.Do(initMetrics)
	submissionEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordSheetsSyncEvent tags the stage that settled the sync leg: sign,
// token_exchange, append, mark_synced or success.
func RecordSheetsSyncEvent(ctx context.Context, stage, outcome string) {
	metricsOnce.Do(initMetrics)
	sheetsSyncEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("outcome", outcome),
	))
}

func RecordContentEvent(ctx context.Context, entity, action, outcome string) {
	metricsOnce.Do(initMetrics)
	contentEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

func RecordAdminLoginEvent(ctx context.Context, outcome string) {
	metricsOnce.Do(initMetrics)
	adminLoginEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func RecordMediaUploadEvent(ctx context.Context, outcome string) {
	metricsOnce.Do(initMetrics)
	mediaUploadEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
