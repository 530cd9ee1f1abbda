package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"localboard/internal/config"
	"localboard/internal/document"
	"localboard/internal/export"
	"localboard/internal/render"
	"localboard/internal/ui"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "localboard:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the TOML settings file")
	writeConfig := flag.Bool("write-config", false, "write the effective settings to the config path and exit")
	exportPath := flag.String("export", "", "export the board file to `out.pdf` or out.png and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [board.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			slog.Warn("main: no user config dir", "err", err)
		}
		path = p
	}

	cfg := config.Default()
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	switch {
	case *writeConfig:
		if path == "" {
			return fmt.Errorf("write config: no config path")
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}
		slog.Info("main: wrote config", "path", path)
		return nil
	case *exportPath != "":
		if flag.NArg() != 1 {
			flag.Usage()
			return errUsage
		}
		return exportBoard(flag.Arg(0), *exportPath, cfg)
	}

	slog.Info("main: starting", "config", path)
	return ui.Run(cfg, flag.Arg(0))
}

// exportBoard renders the document at in to out without opening a window.
func exportBoard(in, out string, cfg config.Config) error {
	doc, err := document.Open(in)
	if err != nil {
		return err
	}
	fonts, err := render.NewFontMeasurer()
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(out)) {
	case ".pdf":
		err = export.WritePDFFile(out, doc.Strokes, fonts)
	case ".png":
		err = writePNGFile(out, doc, fonts, cfg)
	default:
		return fmt.Errorf("export %s: unknown format %q", out, filepath.Ext(out))
	}
	if err != nil {
		return err
	}
	slog.Info("main: exported", "in", in, "out", out, "strokes", len(doc.Strokes))
	return nil
}

func writePNGFile(out string, doc document.Document, fonts *render.FontMeasurer, cfg config.Config) (err error) {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("export %s: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export %s: %w", out, cerr)
		}
	}()
	return export.WritePNG(f, doc.Strokes, fonts, export.ImageOptions{
		Scale:      2,
		Margin:     export.DefaultMargin,
		Background: render.ParseColor(cfg.Board.Background),
	})
}
