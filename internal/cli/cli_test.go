package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, &Config{
		ConfigPath: "grider.hcl",
		LogLevel:   "info",
		LogFormat:  "text",
		LogFile:    "grider.log",
		Rows:       100,
		Columns:    26,
	}, cfg)
	assert.Empty(t, out.String())
}

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{
		"-config", "my.hcl",
		"-log-level", "DEBUG",
		"-log-format", "json",
		"-log-file", "out.log",
		"-rows", "5",
		"-columns", "3",
		"-splash",
		"-header",
		"data.csv",
	}, &out)
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, "my.hcl", cfg.ConfigPath)
	assert.Equal(t, "data.csv", cfg.DataPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "out.log", cfg.LogFile)
	assert.Equal(t, 5, cfg.Rows)
	assert.Equal(t, 3, cfg.Columns)
	assert.True(t, cfg.Splash)
	assert.True(t, cfg.Header)
}

func TestParseDataFlagWinsOverArgument(t *testing.T) {
	cfg, _, err := Parse([]string{"-data", "a.csv"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a.csv", cfg.DataPath)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown flag":   {"-nope"},
		"log format":     {"-log-format", "xml"},
		"log level":      {"-log-level", "loud"},
		"rows":           {"-rows", "0"},
		"columns":        {"-columns", "-1"},
		"too many paths": {"a.csv", "b.csv"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, exit, err := Parse(args, &bytes.Buffer{})
			assert.False(t, exit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
