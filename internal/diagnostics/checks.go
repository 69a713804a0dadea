package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"edumerge/internal/config"
	"edumerge/internal/documents"
	"edumerge/internal/logger"
)

type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusFailed
)

// Result is the outcome of one check.
type Result struct {
	Section  string
	Name     string
	Status   Status
	Detail   string
	Required bool
}

// Report collects every check of one diagnostic run.
type Report struct {
	System  []string
	Results []Result
}

// OK reports whether every required check passed.
func (r Report) OK() bool {
	for _, res := range r.Results {
		if res.Required && res.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Passed counts the checks of section that did not fail.
func (r Report) Passed(section string) (passed, total int) {
	for _, res := range r.Results {
		if res.Section != section {
			continue
		}
		total++
		if res.Status != StatusFailed {
			passed++
		}
	}
	return passed, total
}

const (
	SectionFormats   = "Document Formats (Required)"
	SectionTemp      = "Working Directory (Required)"
	SectionTools     = "System Tools (For PDF Image Rendering)"
	SectionResources = "Resource Files"
)

// Sections in report order.
var Sections = []string{SectionFormats, SectionTemp, SectionTools, SectionResources}

// PopplerTools are probed in order; any one of them enables PDF rendering.
var PopplerTools = []string{documents.RasterTool, "pdfinfo", "pdftocairo"}

// ResourceFiles maps asset file names to what they are used for.
var ResourceFiles = []struct{ File, Description string }{
	{"logo.ico", "Application Icon"},
	{"logo.png", "Logo Image"},
	{"label.png", "Label Image"},
}

var requiredExtensions = []string{".txt", ".csv", ".docx", ".pdf"}

const toolTimeout = 5 * time.Second

// Checker runs the checks. The function fields are replaced in tests.
type Checker struct {
	cfg      config.Config
	logger   logger.Logger
	lookPath func(string) (string, error)
	version  func(ctx context.Context, path string) (string, error)
	stat     func(string) (os.FileInfo, error)
	tempDir  func() string
}

func NewChecker(cfg config.Config, log logger.Logger) *Checker {
	return &Checker{
		cfg:      cfg,
		logger:   log,
		lookPath: exec.LookPath,
		version:  toolVersion,
		stat:     os.Stat,
		tempDir:  os.TempDir,
	}
}

// Run performs every check.
func (c *Checker) Run(ctx context.Context) Report {
	r := Report{System: systemInfo()}
	r.Results = append(r.Results, c.checkFormats()...)
	r.Results = append(r.Results, c.checkTempDir())
	r.Results = append(r.Results, c.checkTools(ctx)...)
	r.Results = append(r.Results, c.checkResources()...)

	for _, res := range r.Results {
		if res.Status == StatusFailed {
			c.logger.Debug("Diagnostics", "check failed", map[string]interface{}{
				"check":    res.Name,
				"detail":   res.Detail,
				"required": res.Required,
			})
		}
	}
	return r
}

func systemInfo() []string {
	return []string{
		fmt.Sprintf("Operating System: %s", runtime.GOOS),
		fmt.Sprintf("Architecture: %s", runtime.GOARCH),
		fmt.Sprintf("Go Version: %s", runtime.Version()),
		fmt.Sprintf("CPUs: %d", runtime.NumCPU()),
	}
}

func (c *Checker) checkFormats() []Result {
	registry := documents.NewDefaultRegistry(c.cfg, c.logger)
	results := make([]Result, 0, len(requiredExtensions))
	for _, ext := range requiredExtensions {
		res := Result{Section: SectionFormats, Name: ext, Required: true}
		adapter := registry.ForPath("file" + ext)
		if supports(adapter.Extensions(), ext) {
			res.Detail = adapter.Kind().String()
		} else {
			res.Status = StatusFailed
			res.Detail = "no adapter"
		}
		results = append(results, res)
	}
	return results
}

func supports(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// checkTempDir makes sure PDF pages can be rendered to scratch files.
func (c *Checker) checkTempDir() Result {
	res := Result{Section: SectionTemp, Name: "Temporary directory", Required: true}
	dir, err := os.MkdirTemp(c.tempDir(), "edumerge-diagnose-")
	if err != nil {
		res.Status = StatusFailed
		res.Detail = err.Error()
		return res
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "probe.txt"), []byte("[name]"), 0o600); err != nil {
		res.Status = StatusFailed
		res.Detail = err.Error()
		return res
	}
	res.Detail = "writable"
	return res
}

func (c *Checker) checkTools(ctx context.Context) []Result {
	results := make([]Result, 0, len(PopplerTools))
	for _, tool := range PopplerTools {
		res := Result{Section: SectionTools, Name: "Poppler - " + tool}
		path, err := c.lookPath(tool)
		if err != nil {
			res.Status = StatusFailed
			res.Detail = "Command not found in PATH"
			results = append(results, res)
			continue
		}

		v, err := c.version(ctx, path)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			res.Status = StatusWarning
			res.Detail = "Command found but timed out"
		case err != nil && v == "":
			res.Status = StatusFailed
			res.Detail = err.Error()
		default:
			res.Detail = v
		}
		results = append(results, res)
	}
	return results
}

// PopplerFound reports whether any poppler tool is usable.
func (r Report) PopplerFound() bool {
	for _, res := range r.Results {
		if res.Section == SectionTools && res.Status != StatusFailed {
			return true
		}
	}
	return false
}

func (c *Checker) checkResources() []Result {
	results := make([]Result, 0, len(ResourceFiles))
	for _, rf := range ResourceFiles {
		path := c.cfg.AssetPath(rf.File)
		res := Result{Section: SectionResources, Name: rf.Description}
		if _, err := c.stat(path); err != nil {
			res.Status = StatusFailed
			res.Detail = "Not found at " + path
		} else {
			res.Detail = "Found at " + path
		}
		results = append(results, res)
	}
	return results
}

// toolVersion runs "<tool> -v" and returns the first output line. Poppler
// tools print their version on stderr.
func toolVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-v").CombinedOutput()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if len(line) > 80 {
		line = line[:80]
	}
	return line, err
}
