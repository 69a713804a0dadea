package merge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"edumerge/internal/logger"
)

const component = "Generator"

// DirOpener shows a directory in the platform file browser.
type DirOpener interface {
	OpenDirectory(dir string) error
}

// Generator writes one personalised letter per recipient.
type Generator struct {
	logger logger.Logger
	exists func(path string) bool
}

// NewGenerator creates a generator that logs through log.
func NewGenerator(log logger.Logger) *Generator {
	return &Generator{
		logger: log,
		exists: fileExists,
	}
}

// Generate validates tmpl and writes a letter for each recipient into dir,
// returning the written paths in recipient order. Nothing is written when
// validation fails. A failure part way through leaves earlier letters on disk.
func (g *Generator) Generate(ctx context.Context, tmpl Template, recipients RecipientList, dir string) ([]string, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrNoNames
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output directory %s: %w", dir, fs.ErrInvalid)
	}

	written := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		path := g.LetterPath(dir, recipient, tmpl.Extension())
		if err := tmpl.WriteLetter(path, recipient); err != nil {
			g.logger.Error(component, err, map[string]interface{}{
				"recipient": recipient,
				"path":      path,
			})
			return written, fmt.Errorf("failed to write letter for %s: %w", recipient, err)
		}
		written = append(written, path)

		g.logger.Debug(component, "letter written", map[string]interface{}{
			"recipient": recipient,
			"path":      path,
		})
	}

	g.logger.Info(component, "mail merge complete", map[string]interface{}{
		"letters": len(written),
		"dir":     dir,
	})
	return written, nil
}

// LetterPath returns "<name>'s Mail<ext>" inside dir. When that file exists
// the name gets a "(1)", "(2)", ... suffix until a free name is found.
func (g *Generator) LetterPath(dir, recipient, ext string) string {
	base := fmt.Sprintf("%s's Mail", safeFileName(recipient))

	path := filepath.Join(dir, base+ext)
	for n := 1; g.exists(path); n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s(%d)%s", base, n, ext))
	}
	return path
}

func safeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
