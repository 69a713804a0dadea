package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"edumerge/internal/logger"
)

// PDFRenderer selects how PDF pages are turned into something viewable.
type PDFRenderer string

const (
	PDFRendererAuto   PDFRenderer = "auto"
	PDFRendererRaster PDFRenderer = "raster"
	PDFRendererText   PDFRenderer = "text"
)

const (
	DefaultAssetsDir   = "assets"
	DefaultPDFDPI      = 300
	DefaultCSVPageSize = 20
)

// Config holds the process-wide settings read at startup.
type Config struct {
	LogLevel    logger.LogLevel
	AssetsDir   string
	PDFRenderer PDFRenderer
	PDFDPI      int
	CSVPageSize int
}

// Default returns the configuration used when no environment overrides exist.
func Default() Config {
	return Config{
		LogLevel:    logger.InfoLevel,
		AssetsDir:   DefaultAssetsDir,
		PDFRenderer: PDFRendererAuto,
		PDFDPI:      DefaultPDFDPI,
		CSVPageSize: DefaultCSVPageSize,
	}
}

// FromEnv reads the configuration from the process environment.
func FromEnv() Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function so callers
// can supply a fake environment.
func FromLookup(lookup func(string) (string, bool)) Config {
	cfg := Default()

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = logger.ParseLevel(v)
	} else if v, ok := lookup("DEBUG"); ok && v == "1" {
		cfg.LogLevel = logger.DebugLevel
	}

	if v, ok := lookup("EDUMERGE_ASSETS"); ok && v != "" {
		cfg.AssetsDir = filepath.Clean(v)
	}

	if v, ok := lookup("EDUMERGE_PDF_RENDERER"); ok {
		switch PDFRenderer(strings.ToLower(strings.TrimSpace(v))) {
		case PDFRendererRaster:
			cfg.PDFRenderer = PDFRendererRaster
		case PDFRendererText:
			cfg.PDFRenderer = PDFRendererText
		}
	}

	cfg.PDFDPI = positiveInt(lookup, "EDUMERGE_PDF_DPI", cfg.PDFDPI)
	cfg.CSVPageSize = positiveInt(lookup, "EDUMERGE_CSV_PAGE_SIZE", cfg.CSVPageSize)

	return cfg
}

// AssetPath joins a file name onto the assets directory.
func (c Config) AssetPath(name string) string {
	return filepath.Join(c.AssetsDir, name)
}

func positiveInt(lookup func(string) (string, bool), key string, fallback int) int {
	v, ok := lookup(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
