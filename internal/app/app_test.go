package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/settingsgen/internal/codegen"
	"github.com/vk/settingsgen/internal/schema"
)

const validSchema = `[Device]
; id: type=int, default=1, min=1, max=99
id=1
; label: type=string:8, default=dev
label=dev

[Verify]
; crc_16_ibm: type=int, default=0, min=0, max=65535
crc_16_ibm=0
`

func writeSchema(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	conf, err := NewConfig(cfg)
	require.NoError(t, err)
	return NewApp(&bytes.Buffer{}, conf)
}

func TestAppRun_WritesArtifacts(t *testing.T) {
	t.Parallel()
	// Arrange
	dir := t.TempDir()
	outDir := filepath.Join(dir, "gen")
	schemaPath := writeSchema(t, dir, "settings.ini", validSchema)
	app := newTestApp(t, Config{SchemaPath: schemaPath, OutDir: outDir})

	// Act
	err := app.Run(context.Background())

	// Assert
	require.NoError(t, err)
	header, err := os.ReadFile(filepath.Join(outDir, codegen.HeaderFileName))
	require.NoError(t, err)
	assert.Contains(t, string(header), "typedef struct")
	assert.Contains(t, string(header), "settings_persist_set_Device_id")

	impl, err := os.ReadFile(filepath.Join(outDir, codegen.ImplFileName))
	require.NoError(t, err)
	assert.Contains(t, string(impl), "settings_ini_handler")
	assert.Contains(t, string(impl), "write_settings_to_file")

	_, err = os.Stat(filepath.Join(outDir, codegen.ManifestFileName))
	assert.True(t, os.IsNotExist(err), "manifest is opt-in")
}

func TestAppRun_WritesManifestWhenRequested(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "gen")
	schemaPath := writeSchema(t, dir, "settings.ini", validSchema)
	app := newTestApp(t, Config{SchemaPath: schemaPath, OutDir: outDir, WriteManifest: true})

	require.NoError(t, app.Run(context.Background()))

	manifest, err := os.ReadFile(filepath.Join(outDir, codegen.ManifestFileName))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"crc_16_ibm"`)
}

func TestAppRun_ResolvesDirectorySchemaPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "gen")
	writeSchema(t, dir, "settings.ini", validSchema)
	app := newTestApp(t, Config{SchemaPath: dir, OutDir: outDir})

	require.NoError(t, app.Run(context.Background()))

	_, err := os.Stat(filepath.Join(outDir, codegen.HeaderFileName))
	require.NoError(t, err)
}

func TestAppRun_CompileErrorCarriesDiagnostic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir, "settings.ini", "[Device]\n; id: type=int, default=1\nid=1\n")
	app := newTestApp(t, Config{SchemaPath: schemaPath, OutDir: dir})

	err := app.Run(context.Background())

	require.Error(t, err)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	kind, ok := schema.KindOf(compileErr.Diag)
	require.True(t, ok)
	assert.Equal(t, schema.KindSemantic, kind)
	assert.Contains(t, err.Error(), schemaPath)
}

func TestAppRun_StopsAtFirstViolation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "gen")
	schemaPath := writeSchema(t, dir, "settings.ini", "not a section\n")
	app := newTestApp(t, Config{SchemaPath: schemaPath, OutDir: outDir})

	err := app.Run(context.Background())

	require.Error(t, err)
	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr), "no artifacts on a failed compile")
}

func TestAppRun_MissingSchemaPath(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, Config{SchemaPath: filepath.Join(t.TempDir(), "absent.ini")})

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving schema path")
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{SchemaPath: "settings.ini"})

	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfig_RequiresSchemaPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})

	require.Error(t, err)
}
