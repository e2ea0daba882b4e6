package analytics

import (
	"context"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

type Loader interface {
	Load(ctx context.Context, path string, schema models.Schema) (*models.Dataset, error)
}

// Sink stores named tables under outputDir and returns artifact -> location.
type Sink interface {
	Name() string
	Save(ctx context.Context, outputDir string, tables ...models.Table) (map[string]string, error)
}

type ExportPublisher interface {
	PublishExportCompleted(ctx context.Context, msg models.ExportCompletedMessage) error
}

type EventNotifier interface {
	Notify(ctx context.Context, event types.PipelineEvent, msg models.PipelineEventMessage)
}
