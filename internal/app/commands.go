package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"grider/internal/point"
	"grider/internal/storage"
	"grider/internal/store"
)

// ExecuteCommand runs a ":" command:
//
//	q          quit
//	cw N       set every column width to N (at least 4)
//	rh N       set every row height to N (at least 1)
//	o FILE     load FILE as CSV, ".csv" is added when missing
func (a *App) ExecuteCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}
	a.logger.Debug("Command.", "command", cmd)
	switch parts[0] {
	case "q", "quit":
		a.Quit = true
	case "cw":
		if v, ok := intArg(parts, 4); ok {
			a.DefaultWidth = v
			clear(a.ColWidths)
			return
		}
		a.Status = "usage: cw N (N >= 4)"
	case "rh":
		if v, ok := intArg(parts, 1); ok {
			a.DefaultHeight = v
			clear(a.RowHeights)
			return
		}
		a.Status = "usage: rh N (N >= 1)"
	case "o":
		if len(parts) < 2 {
			a.Status = "usage: o file.csv"
			return
		}
		a.open(parts[1])
	default:
		a.Status = fmt.Sprintf("unknown command: %s", parts[0])
	}
}

func intArg(parts []string, least int) (int, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	v, err := strconv.Atoi(parts[1])
	if err != nil || v < least {
		return 0, false
	}
	return v, true
}

// open replaces the sheet with the CSV file at filename and moves to the
// top left cell.
func (a *App) open(filename string) {
	if filepath.Ext(filename) != ".csv" {
		filename += ".csv"
	}
	data, err := storage.LoadCSV(filename)
	if err != nil {
		a.logger.Error("Could not open file.", "file", filename, "error", err)
		a.Status = "error loading CSV, see log"
		return
	}
	if a.hasHeader {
		a.ColumnLabels, data = storage.SplitHeader(data)
	}
	a.store.Dispatch(
		store.SetData{Data: data.Pad(a.minRows, a.minColumns)},
		store.Activate{Point: point.Origin},
	)
	a.ViewRow, a.ViewCol = 0, 0
	a.logger.Info("Opened file.", "file", filename)
	a.Status = "opened " + filename
}
