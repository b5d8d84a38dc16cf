package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/tracing"
)

// Saver writes artifacts into a directory.
type Saver struct {
	fs     afero.Fs
	dir    string
	tracer trace.Tracer
}

// NewSaver creates a Saver over fs. An empty dir means the working directory.
func NewSaver(fs afero.Fs, dir string, tracer trace.Tracer) *Saver {
	if tracer == nil {
		tracer = tracing.Noop()
	}
	if dir == "" {
		dir = "."
	}
	return &Saver{fs: fs, dir: dir, tracer: tracer}
}

// Dir is the target directory.
func (s *Saver) Dir() string { return s.dir }

// Save writes a to <dir>/<filename>, replacing any existing file, and
// returns the path written.
func (s *Saver) Save(ctx context.Context, a Artifact) (string, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanExport)
	defer span.End()
	span.SetAttributes(
		attribute.String(tracing.AttrFormat, strings.TrimPrefix(filepath.Ext(a.Filename), ".")),
		attribute.Int(tracing.AttrBytes, len(a.Content)),
	)

	if a.Filename == "" {
		return "", fmt.Errorf("save artifact: empty filename")
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("create export dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, a.Filename)
	if err := afero.WriteFile(s.fs, path, []byte(a.Content), 0o644); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	log.Info(log.CatExport, "saved export", "path", path, "bytes", len(a.Content))
	return path, nil
}

// DefaultDir is where exports land when export.dir is unset: the user's
// Downloads folder if it exists, the working directory otherwise.
func DefaultDir(fs afero.Fs) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dl := filepath.Join(home, "Downloads")
	if ok, _ := afero.DirExists(fs, dl); ok {
		return dl
	}
	return "."
}
