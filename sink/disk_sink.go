package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"chat-archive/domain"
)

// DiskSink saves artifacts under a fixed output directory. It stands
// in for the host environment's save-as facility.
type DiskSink struct {
	outputDir string
	log       *slog.Logger
}

func NewDiskSink(outputDir string, log *slog.Logger) DiskSink {
	return DiskSink{outputDir: outputDir, log: log}
}

func (d DiskSink) Save(_ context.Context, artifact domain.Artifact) error {
	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	target := filepath.Join(d.outputDir, artifact.Filename)
	if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	d.log.Debug("Artifact saved", "path", target, "bytes", len(artifact.Data))
	return nil
}
