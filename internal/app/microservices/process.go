package microservices

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// ProcessService runs the pipeline once and reports where the artifacts went.
type ProcessService struct {
	cfg config.Config
	out io.Writer
	log logger.Logger
}

func NewProcess(ctx context.Context, cfg config.Config, log logger.Logger) (*ProcessService, error) {
	return &ProcessService{
		cfg: cfg,
		out: os.Stdout,
		log: log,
	}, nil
}

func (s *ProcessService) Start(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, "process_mode")

	p, err := newPipeline(ctx, s.cfg, s.log, nil)
	if err != nil {
		return err
	}
	defer p.Close(context.WithoutCancel(ctx))

	outputs, err := p.processor.ProcessAndSave(ctx, s.cfg.Pipeline.OutputDir)
	if err != nil {
		return err
	}

	PrintOutputs(s.out, outputs)
	return nil
}

// PrintOutputs writes "- <artifact>: <location>" lines in artifact order.
func PrintOutputs(w io.Writer, outputs map[string]string) {
	fmt.Fprintln(w, "Processing complete")
	for _, a := range types.Artifacts() {
		if loc, ok := outputs[a.String()]; ok {
			fmt.Fprintf(w, "- %s: %s\n", a, loc)
		}
	}
}
