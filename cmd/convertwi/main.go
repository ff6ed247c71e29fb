// Command convertwi converts one document to HTML with acronym tooltips.
//
// Settings come from the same environment as the server (INPUT_PATH,
// OUTPUT_PATH, ACRONYM_TABLE, DOCX_CONVERTER, PANDOC_PATH) and can be
// overridden with flags.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/convertwi/internal/acronym"
	"github.com/dgallion1/convertwi/internal/config"
	"github.com/dgallion1/convertwi/internal/parser"
	"github.com/dgallion1/convertwi/internal/pipeline"
	flag "github.com/spf13/pflag"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(context.Background(), os.Args[1:], config.Load(), log); err != nil {
		log.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}

// parseFlags overlays command line flags on cfg.
func parseFlags(args []string, cfg config.Config, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("convertwi", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "document to convert (.docx, .html, .md)")
	fs.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "where to write the annotated HTML")
	fs.StringVarP(&cfg.AcronymTable, "acronyms", "a", cfg.AcronymTable, "acronym table (.csv, .xlsx, .yaml)")
	fs.StringVar(&cfg.DocxConverter, "converter", cfg.DocxConverter, "docx backend: pandoc or native")
	fs.StringVar(&cfg.PandocPath, "pandoc", cfg.PandocPath, "path to the pandoc binary")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, cfg config.Config, log *slog.Logger) error {
	cfg, err := parseFlags(args, cfg, os.Stderr)
	if err != nil {
		return err
	}

	entries, err := acronym.LoadFile(cfg.AcronymTable)
	if err != nil {
		return err
	}
	docx, err := parser.NewDocxConverter(cfg.DocxConverter, cfg.PandocPath)
	if err != nil {
		return err
	}
	p, err := parser.ForFile(cfg.InputPath, docx)
	if err != nil {
		return err
	}

	in, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	res, err := pipeline.Convert(ctx, p, bytes.NewReader(in), filepath.Base(cfg.InputPath), entries)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(cfg.OutputPath, []byte(res.HTML)); err != nil {
		return err
	}

	total := 0
	for _, n := range res.Annotations {
		total += n
	}
	log.Info("converted document",
		"input", cfg.InputPath,
		"output", cfg.OutputPath,
		"acronyms", len(entries),
		"annotations", total,
	)
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so a
// failed run never leaves a partial output file behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".convertwi-*.html")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write output: %w", err)
	}
	// CreateTemp uses 0600; the output is a regular readable file.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
