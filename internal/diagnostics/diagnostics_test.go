package diagnostics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumerge/internal/config"
	"edumerge/internal/logger"
)

func newTestChecker(t *testing.T, tools map[string]string) *Checker {
	t.Helper()
	cfg := config.Default()
	cfg.AssetsDir = t.TempDir()

	c := NewChecker(cfg, logger.Nop())
	c.lookPath = func(name string) (string, error) {
		if _, ok := tools[name]; ok {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	c.version = func(_ context.Context, path string) (string, error) {
		return tools[filepath.Base(path)], nil
	}
	c.tempDir = t.TempDir
	return c
}

func find(t *testing.T, r Report, name string) Result {
	t.Helper()
	for _, res := range r.Results {
		if res.Name == name {
			return res
		}
	}
	t.Fatalf("no result %q", name)
	return Result{}
}

func TestRunWithoutToolsOrAssets(t *testing.T) {
	r := newTestChecker(t, nil).Run(context.Background())

	assert.True(t, r.OK())
	assert.False(t, r.PopplerFound())
	assert.Equal(t, StatusOK, find(t, r, ".docx").Status)
	assert.Equal(t, "Word Document", find(t, r, ".docx").Detail)
	assert.Equal(t, StatusOK, find(t, r, "Temporary directory").Status)
	assert.Equal(t, StatusFailed, find(t, r, "Logo Image").Status)

	passed, total := r.Passed(SectionResources)
	assert.Equal(t, 0, passed)
	assert.Equal(t, 3, total)
}

func TestRunFindsToolsAndAssets(t *testing.T) {
	c := newTestChecker(t, map[string]string{"pdftoppm": "pdftoppm version 24.02.0"})
	require.NoError(t, os.WriteFile(c.cfg.AssetPath("label.png"), []byte("png"), 0o644))

	r := c.Run(context.Background())

	assert.True(t, r.PopplerFound())
	assert.Equal(t, "pdftoppm version 24.02.0", find(t, r, "Poppler - pdftoppm").Detail)
	assert.Equal(t, StatusFailed, find(t, r, "Poppler - pdfinfo").Status)
	assert.Equal(t, StatusOK, find(t, r, "Label Image").Status)
}

func TestToolTimeoutIsWarning(t *testing.T) {
	c := newTestChecker(t, map[string]string{"pdfinfo": ""})
	c.version = func(context.Context, string) (string, error) {
		return "", context.DeadlineExceeded
	}

	r := c.Run(context.Background())

	assert.Equal(t, StatusWarning, find(t, r, "Poppler - pdfinfo").Status)
	assert.True(t, r.PopplerFound())
}

func TestUnwritableTempDirFails(t *testing.T) {
	c := newTestChecker(t, nil)
	c.tempDir = func() string { return filepath.Join(t.TempDir(), "missing", "dir") }

	r := c.Run(context.Background())

	assert.False(t, r.OK())
	assert.Equal(t, StatusFailed, find(t, r, "Temporary directory").Status)
}

func TestRender(t *testing.T) {
	r := newTestChecker(t, nil).Run(context.Background())
	out := Render(r)

	assert.Contains(t, out, "EDUMERGE DEPENDENCY DIAGNOSTIC TOOL")
	assert.Contains(t, out, "Logo Image")
	assert.Contains(t, out, "NOT FOUND")
	assert.Contains(t, out, "ALL REQUIRED CHECKS PASSED")
	assert.Contains(t, out, "Install Poppler")
	assert.Contains(t, out, "Missing resource files:")
}
