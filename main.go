package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"grider/internal/app"
	"grider/internal/calc"
	"grider/internal/cli"
	"grider/internal/config"
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/storage"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses arguments, loads the settings and the seed data, and runs the
// sheet until the user quits.
func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// the terminal belongs to tcell, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()
	logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, logFile)

	settings, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	data := matrix.CreateEmpty[grid.Cell](cfg.Rows, cfg.Columns)
	if cfg.DataPath != "" {
		data, err = storage.LoadCSV(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("cannot load data: %w", err)
		}
	}
	var columnLabels []string
	if cfg.Header {
		columnLabels, data = storage.SplitHeader(data)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("cannot create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("cannot init screen: %w", err)
	}
	defer s.Fini()
	s.EnableMouse()
	s.Clear()
	if cfg.Splash && !app.Splash(s, sheetInfo(cfg.DataPath, data), 150*time.Millisecond) {
		logger.Info("Left from the start screen.")
		return nil
	}

	a := app.New(s, data, app.Options{
		Config:       settings,
		ConfigPath:   cfg.ConfigPath,
		Parser:       calc.New(),
		Logger:       logger,
		MinRows:      cfg.Rows,
		MinColumns:   cfg.Columns,
		Header:       cfg.Header,
		ColumnLabels: columnLabels,
	})
	logger.Info("Sheet started.", "data", cfg.DataPath, "config", cfg.ConfigPath)
	return a.Run(context.Background())
}

// sheetInfo describes the sheet on the start screen.
func sheetInfo(path string, data matrix.Matrix[grid.Cell]) string {
	name := "new sheet"
	if path != "" {
		name = filepath.Base(path)
	}
	size := data.Size()
	return fmt.Sprintf("%s  %dx%d", name, size.Rows, size.Columns)
}
