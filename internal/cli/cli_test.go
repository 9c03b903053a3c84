package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orm-generator/internal/config"
	"orm-generator/internal/logger"
)

// writeModule creates a throwaway module holding the given files.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files["go.mod"] = "module example.com/shop\n\ngo 1.24\n"

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ORMGEN_LOG_LEVEL", "")
	t.Setenv("ORMGEN_WORKERS", "")
	t.Cleanup(func() { logger.SetGlobal(nil, false) })

	var out, errOut bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

const pointSource = `package models

//orm:model
type Point struct {
	X int32
	Y int32
}
`

func TestRootCommandHasSubcommands(t *testing.T) {
	var names []string
	for _, c := range NewRootCmd().Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"init", "gen", "check", "watch", "version"})
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "orm-generator v"+Version+"@"), out)
}

func TestGen_NoPackages(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "gen", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no packages given")
}

func TestGen_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "gen", "--log-level", "loud", "./models")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestGen_WritesMappers(t *testing.T) {
	dir := writeModule(t, map[string]string{"models/point.go": pointSource})

	out, err := run(t, "gen", "-C", dir, "./models")
	require.NoError(t, err)

	path := filepath.Join(dir, "models", "models.Point.generated.go")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "// Code generated by orm-generator. DO NOT EDIT."))
	assert.Contains(t, text, "func PointFromRow(r row.Reader) (Point, error) {")
	assert.Contains(t, text, "out.Y, err = r.GetInt32(*index)")

	assert.Regexp(t, `wrote .*models\.Point\.generated\.go`, out)
	assert.Contains(t, out, "1 model: 1 emitted, 0 unchanged, 0 failed, 0 retired; 0 errors, 0 notes")
}

func TestGen_ConfigPackages(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"models/point.go":    pointSource,
		"orm-generator.yaml": "packages: [./models]\nrow_package: example.com/shop/db/row\n",
	})

	_, err := run(t, "gen", "-C", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "models", "models.Point.generated.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"example.com/shop/db/row"`)
}

func TestGen_ReportsErrors(t *testing.T) {
	dir := writeModule(t, map[string]string{"models/order.go": `package models

//orm:model
type Order struct {
	ID    int64
	Count int
}
`})

	out, err := run(t, "gen", "-C", dir, "./models")
	require.ErrorIs(t, err, ErrReported)

	assert.Contains(t, out, "error ORM001")
	assert.Contains(t, out, "Count")
	assert.NoFileExists(t, filepath.Join(dir, "models", "models.Order.generated.go"))
}

func TestGen_RemovesMapperOfFailedModel(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"models/point.go": `package models

//orm:model
type Point struct {
	X int32
	Y int32
	Z int
}
`,
		"models/models.Point.generated.go": "// Code generated by orm-generator. DO NOT EDIT.\n\npackage models\n",
	})

	out, err := run(t, "gen", "-C", dir, "./models")
	require.ErrorIs(t, err, ErrReported)

	assert.Contains(t, out, "error ORM001")
	assert.Regexp(t, `removed .*models\.Point\.generated\.go`, out)
	assert.NoFileExists(t, filepath.Join(dir, "models", "models.Point.generated.go"))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init", "-C", dir, "./models")
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.LoadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, []string{"./models"}, cfg.Packages)
	assert.Equal(t, config.DefaultRowPackage, cfg.RowPackage)

	_, err = run(t, "init", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "init", "-C", dir, "--force", "./db")
	require.NoError(t, err)

	cfg, err = config.LoadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, []string{"./db"}, cfg.Packages)
}

func TestCheck(t *testing.T) {
	dir := writeModule(t, map[string]string{"models/point.go": pointSource})

	out, err := run(t, "check", "-C", dir, "./models")
	require.ErrorIs(t, err, ErrReported)
	assert.Regexp(t, `stale .*models\.Point\.generated\.go`, out)
	assert.NoFileExists(t, filepath.Join(dir, "models", "models.Point.generated.go"))
}

func TestWatch_WritesUntilCanceled(t *testing.T) {
	t.Setenv("ORMGEN_LOG_LEVEL", "")
	t.Setenv("ORMGEN_WORKERS", "")
	t.Cleanup(func() { logger.SetGlobal(nil, false) })

	dir := writeModule(t, map[string]string{"models/point.go": pointSource})
	path := filepath.Join(dir, "models", "models.Point.generated.go")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	go func() {
		for ctx.Err() == nil {
			if _, err := os.Stat(path); err == nil {
				cancel()
				return
			}

			time.Sleep(20 * time.Millisecond)
		}
	}()

	var out bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"watch", "--interval", "50ms", "-C", dir, "./models"})

	require.NoError(t, root.ExecuteContext(ctx))
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "watch stopped")
}
