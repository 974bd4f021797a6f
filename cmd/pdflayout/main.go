// Package main is the CLI entry point: a single binary that reads a JSON
// document on standard input and writes a PDF to standard output, per
// spec.md §6.
//
// Usage:
//
//	pdflayout [-config defaults.toml] [-verbose] < document.json > out.pdf
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/boergens/pdflayout/docjson"
	"github.com/boergens/pdflayout/element"
	"github.com/boergens/pdflayout/geom"
	"github.com/boergens/pdflayout/shaping"
	"github.com/boergens/pdflayout/writer"
)

// config holds the optional TOML defaults file's knobs. The only knob is
// the shaping cache's capacity; no document JSON field falls back to it.
type config struct {
	ShapingCacheSize int `toml:"shaping_cache_size"`
}

func main() {
	configPath := flag.String("config", "", "optional TOML defaults file")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	if err := run(*configPath, logger); err != nil {
		logger.Errorf("generation failed: %v", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.SugaredLogger {
	var l *zap.Logger
	var err error
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		// zap construction failing means stderr itself is unusable; there is
		// no logger to report through, so fall back to a silent no-op one.
		l = zap.NewNop()
	}
	return l.Sugar()
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}

func run(configPath string, logger *zap.SugaredLogger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	logger.Debugw("parsing document", "bytes", len(input))

	cache := shaping.NewCache(cfg.ShapingCacheSize)
	doc, err := docjson.Parse(input, docjson.Options{Cache: cache})
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	logger.Debugw("document parsed", "entries", len(doc.Entries), "title", doc.Title)

	out, err := Render(doc)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Infow("document generated", "bytes", len(out))
	return nil
}

// Render lays out and writes every page entry of doc, returning the
// finished PDF bytes. Each entry gets its own Breakable rooted at the page
// the writer just allocated for it, so a multi-page element naturally
// spills across as many writer pages as it needs.
func Render(doc *docjson.Document) ([]byte, error) {
	w := writer.New(writer.Metadata{Title: doc.Title})
	for i, entry := range doc.Entries {
		if err := renderEntry(w, entry); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return w.Finish(), nil
}

func renderEntry(w *writer.Writer, entry docjson.PageEntry) error {
	pageID := w.AddPage(entry.Size)
	// Successive entries keep appending to the same document-wide page
	// list, so each entry's own break counter must start at its own first
	// page, not at the document's page 0.
	root := w.Root(entry.Size.Height).WithBreakOffset(uint32(pageID))
	surf := w.PageSurface(pageID)

	measureCtx := element.MeasureContext{
		Width:       geom.WidthConstraint{Max: entry.Size.Width, Expand: true},
		FirstHeight: entry.Size.Height,
		Breakable:   root,
	}
	out := entry.Element.Measure(measureCtx)
	if out.Size.Height < 0 || out.Size.Width < 0 {
		return fmt.Errorf("layout produced a negative size %v", out.Size)
	}

	drawCtx := element.DrawContext{
		Surface:     surf,
		Width:       measureCtx.Width,
		Location:    geom.Location{Page: pageID},
		FirstHeight: entry.Size.Height,
		Breakable:   root,
	}
	entry.Element.Draw(drawCtx)
	return nil
}
