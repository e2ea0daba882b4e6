package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/aggregate"
	"github.com/Temutjin2k/ride-analytics/internal/service/quality"
	"github.com/Temutjin2k/ride-analytics/pkg/hasher"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
)

// Processor is one analytics session over a record source. It owns the
// loaded dataset: absent until Load, then replaced only by another Load.
type Processor struct {
	source    string
	schema    models.Schema
	loader    Loader
	sink      Sink
	mirrors   []Sink
	publisher ExportPublisher
	notifier  EventNotifier
	log       logger.Logger

	loadMu  sync.Mutex // serializes loads
	mu      sync.RWMutex
	dataset *models.Dataset
}

type Option func(*Processor)

// WithMirrors adds sinks that receive a copy of every export after the primary sink.
func WithMirrors(sinks ...Sink) Option {
	return func(p *Processor) {
		p.mirrors = append(p.mirrors, sinks...)
	}
}

func WithPublisher(pub ExportPublisher) Option {
	return func(p *Processor) {
		p.publisher = pub
	}
}

func WithNotifier(n EventNotifier) Option {
	return func(p *Processor) {
		p.notifier = n
	}
}

func NewProcessor(source string, loader Loader, sink Sink, log logger.Logger, opts ...Option) *Processor {
	p := &Processor{
		source: source,
		schema: models.RequiredColumns,
		loader: loader,
		sink:   sink,
		log:    log,
	}
	for _, opt := range opts {
		opt(p)
	}

	log.Info(context.Background(), "initialized processor", "source", source)
	return p
}

func (p *Processor) Source() string {
	return p.source
}

// Load reads the source and replaces the held dataset.
func (p *Processor) Load(ctx context.Context) (*models.Dataset, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	return p.load(ctx)
}

// load must be called with loadMu held.
func (p *Processor) load(ctx context.Context) (*models.Dataset, error) {
	ctx = wrap.WithAction(ctx, types.ActionLoad)
	started := time.Now()

	ds, err := p.loader.Load(ctx, p.source, p.schema)
	metrics.RecordStage("load", started)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to load %s: %w", p.source, err))
	}

	metrics.RidesLoadedTotal.Add(float64(ds.Len()))

	p.mu.Lock()
	p.dataset = ds
	p.mu.Unlock()

	return ds, nil
}

// Dataset returns the held dataset or types.ErrNotLoaded.
func (p *Processor) Dataset() (*models.Dataset, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.dataset == nil {
		return nil, types.ErrNotLoaded
	}
	return p.dataset, nil
}

// QualityCheck audits the held dataset.
func (p *Processor) QualityCheck(ctx context.Context) (models.QualityReport, error) {
	ctx = wrap.WithAction(ctx, types.ActionQualityCheck)

	ds, err := p.Dataset()
	if err != nil {
		return models.QualityReport{}, wrap.Error(ctx, err)
	}

	report := quality.Audit(ds)
	p.log.Info(ctx, "quality check", "records", report.TotalRecords)
	if report.Duplicates > 0 {
		p.log.Warn(ctx, "found duplicate ride ids", "duplicates", report.Duplicates)
	}

	return report, nil
}

func (p *Processor) HourlyMetrics(ctx context.Context) (models.Table, error) {
	return p.Table(ctx, types.HourlyMetrics)
}

func (p *Processor) ZoneMetrics(ctx context.Context) (models.Table, error) {
	return p.Table(ctx, types.GeographicMetrics)
}

func (p *Processor) PeakHours(ctx context.Context) (models.Table, error) {
	return p.Table(ctx, types.PeakHours)
}

func (p *Processor) VehicleTypes(ctx context.Context) (models.Table, error) {
	return p.Table(ctx, types.VehicleType)
}

func (p *Processor) SurgeAnalysis(ctx context.Context) (models.Table, error) {
	return p.Table(ctx, types.SurgeAnalysis)
}

// Table runs the transform of one artifact over the held dataset.
func (p *Processor) Table(ctx context.Context, artifact types.Artifact) (models.Table, error) {
	ctx = wrap.WithArtifact(wrap.WithAction(ctx, types.ActionAggregate), artifact.String())

	transform, ok := aggregate.For(artifact)
	if !ok {
		return models.Table{}, wrap.Error(ctx, fmt.Errorf("%w: %s", types.ErrUnknownArtifact, artifact))
	}

	ds, err := p.Dataset()
	if err != nil {
		return models.Table{}, wrap.Error(ctx, err)
	}

	return transform(ds), nil
}

// ProcessAndSave loads the source if nothing is held yet, runs every transform
// and stores the tables through the primary sink, then the mirrors.
// The returned map is artifact -> location from the primary sink.
func (p *Processor) ProcessAndSave(ctx context.Context, outputDir string) (outputs map[string]string, err error) {
	runID := uuid.NewString()
	ctx = wrap.WithRunID(wrap.WithAction(ctx, types.ActionProcessAndSave), runID)

	defer func() {
		metrics.RecordRun(err)
		if err != nil {
			p.notify(ctx, types.EventFailed, models.PipelineEventMessage{RunID: runID, Source: p.source, Error: err.Error()})
		}
	}()

	ds, err := p.ensureLoaded(ctx, runID)
	if err != nil {
		return nil, err
	}

	tables, err := p.runTransforms(ctx, ds)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	started := time.Now()
	outputs, err = p.sink.Save(ctx, outputDir, tables...)
	metrics.RecordStage("save", started)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to save artifacts: %w", err))
	}
	metrics.RecordArtifacts(p.sink.Name(), len(outputs))
	p.log.Info(ctx, "saved output files", "count", len(outputs), "dir", outputDir)

	p.mirror(ctx, outputDir, tables)

	p.notify(ctx, types.EventExported, models.PipelineEventMessage{RunID: runID, Source: p.source, RowCount: ds.Len(), Outputs: outputs})
	p.publish(ctx, runID, ds, outputs)

	return outputs, nil
}

// ensureLoaded loads the source at most once for concurrent first runs.
func (p *Processor) ensureLoaded(ctx context.Context, runID string) (*models.Dataset, error) {
	if ds, err := p.Dataset(); err == nil {
		return ds, nil
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if ds, err := p.Dataset(); err == nil {
		return ds, nil
	}

	p.notify(ctx, types.EventLoadStarted, models.PipelineEventMessage{RunID: runID, Source: p.source})
	ds, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	p.notify(ctx, types.EventLoaded, models.PipelineEventMessage{RunID: runID, Source: p.source, RowCount: ds.Len()})

	return ds, nil
}

// runTransforms runs the transforms concurrently; they only read ds.
// Tables come back in artifact order.
func (p *Processor) runTransforms(ctx context.Context, ds *models.Dataset) ([]models.Table, error) {
	started := time.Now()
	defer metrics.RecordStage("aggregate", started)

	artifacts := types.Artifacts()
	tables := make([]models.Table, len(artifacts))

	g, gctx := errgroup.WithContext(ctx)
	for i, artifact := range artifacts {
		transform, ok := aggregate.For(artifact)
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownArtifact, artifact)
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables[i] = transform(ds)
			p.log.Debug(wrap.WithArtifact(gctx, artifact.String()), "aggregated", "rows", tables[i].Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate: %w", err)
	}

	return tables, nil
}

// mirror failures are logged; the primary sink already holds the export.
func (p *Processor) mirror(ctx context.Context, outputDir string, tables []models.Table) {
	for _, m := range p.mirrors {
		started := time.Now()
		locations, err := m.Save(ctx, outputDir, tables...)
		metrics.RecordStage("mirror_"+m.Name(), started)
		if err != nil {
			ctx := wrap.WithAction(ctx, types.ActionMirrorFailed)
			p.log.Error(ctx, "failed to mirror artifacts", err, "sink", m.Name())
			continue
		}
		metrics.RecordArtifacts(m.Name(), len(locations))
		p.log.Debug(ctx, "mirrored artifacts", "sink", m.Name(), "count", len(locations))
	}
}

func (p *Processor) publish(ctx context.Context, runID string, ds *models.Dataset, outputs map[string]string) {
	if p.publisher == nil {
		return
	}
	ctx = wrap.WithAction(ctx, types.ActionPublishExport)

	sum, err := hasher.File(p.source)
	if err != nil {
		p.log.Warn(ctx, "failed to fingerprint source", "error", err.Error())
	}

	msg := models.ExportCompletedMessage{
		RunID:        runID,
		Source:       p.source,
		SourceSHA256: sum,
		RowCount:     ds.Len(),
		Outputs:      outputs,
		Quality:      models.NewQualitySummary(quality.Audit(ds)),
		FinishedAt:   time.Now().UTC(),
	}
	if err := p.publisher.PublishExportCompleted(ctx, msg); err != nil {
		p.log.Error(wrap.ErrorCtx(ctx, err), "failed to publish export event", err)
	}
}

func (p *Processor) notify(ctx context.Context, event types.PipelineEvent, msg models.PipelineEventMessage) {
	if p.notifier == nil {
		return
	}
	msg.Type = event
	msg.Timestamp = time.Now().UTC()
	p.notifier.Notify(ctx, event, msg)
}
