package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/settingsgen/internal/codegen"
	"github.com/vk/settingsgen/internal/ctxlog"
	"github.com/vk/settingsgen/internal/fsutil"
	"github.com/vk/settingsgen/internal/schema"
)

// SchemaExtension is the file suffix searched for when the schema path is a
// directory.
const SchemaExtension = ".ini"

// CompileError carries the single fatal diagnostic of a failed run. Its
// Error string is the one-line form the process exit contract requires on
// stderr.
type CompileError struct {
	Diag *hcl.Diagnostic
}

func (e *CompileError) Error() string {
	return schema.FormatDiagnostic(e.Diag)
}

// App encapsulates one compiler invocation: resolve the schema document,
// compile it into a model, run the emitters, write the artifacts.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	now    func() time.Time
}

// NewApp constructs the application with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		config: cfg,
		now:    time.Now,
	}
}

// Run executes the full compile-and-emit pipeline. A schema violation comes
// back as a *CompileError; every other failure is an ordinary error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	path, err := fsutil.FindSchemaFile(a.config.SchemaPath, SchemaExtension)
	if err != nil {
		return fmt.Errorf("resolving schema path: %w", err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading schema document: %w", err)
	}
	a.logger.Debug("schema document loaded.", "path", path, "bytes", len(src))

	model, diags := schema.Compile(ctx, path, string(src))
	if diags.HasErrors() {
		return &CompileError{Diag: diags[0]}
	}
	a.logger.Info("schema compiled.", "sections", len(model.Sections()), "entries", model.Len())

	artifacts, err := codegen.Generate(model, a.now())
	if err != nil {
		return err
	}

	outputs := []struct {
		name string
		text string
	}{
		{codegen.HeaderFileName, artifacts.Header},
		{codegen.ImplFileName, artifacts.Impl},
	}
	if a.config.WriteManifest {
		outputs = append(outputs, struct {
			name string
			text string
		}{codegen.ManifestFileName, artifacts.Manifest})
	}

	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, out := range outputs {
		target := filepath.Join(a.config.OutDir, out.name)
		if err := os.WriteFile(target, []byte(out.text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out.name, err)
		}
		a.logger.Info("artifact written.", "path", target, "bytes", len(out.text))
	}
	return nil
}
