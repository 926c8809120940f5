package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grider/internal/cli"
	"grider/internal/grid"
	"grider/internal/matrix"
)

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-help"}))
	assert.Contains(t, out.String(), "grider [options] [DATA_PATH]")
}

func TestRunInvalidFlags(t *testing.T) {
	err := run(&bytes.Buffer{}, []string{"-log-format", "xml"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestSheetInfo(t *testing.T) {
	assert.Equal(t, "new sheet  100x26", sheetInfo("", matrix.CreateEmpty[grid.Cell](100, 26)))
	assert.Equal(t, "data.csv  2x3", sheetInfo("/tmp/some/data.csv", matrix.CreateEmpty[grid.Cell](2, 3)))
}
