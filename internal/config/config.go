// Package config loads the sheet's HCL settings file and watches it for
// changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Config holds the editing and layout options of the host.
type Config struct {
	EnterStartsEdit      bool
	MoveAfterEnter       bool
	DefaultWidth         int
	DefaultHeight        int
	CellPadding          int
	HideRowIndicators    bool
	HideColumnIndicators bool
}

// Default returns the options used when no file is given.
func Default() Config {
	return Config{
		EnterStartsEdit: true,
		MoveAfterEnter:  true,
		DefaultWidth:    16,
		DefaultHeight:   1,
		CellPadding:     1,
	}
}

// options is the "options" block. Unset attributes keep their defaults.
type options struct {
	EnterStartsEdit      *bool `hcl:"enter_starts_edit,optional"`
	MoveAfterEnter       *bool `hcl:"move_after_enter,optional"`
	DefaultWidth         *int  `hcl:"default_width,optional"`
	DefaultHeight        *int  `hcl:"default_height,optional"`
	CellPadding          *int  `hcl:"cell_padding,optional"`
	HideRowIndicators    *bool `hcl:"hide_row_indicators,optional"`
	HideColumnIndicators *bool `hcl:"hide_column_indicators,optional"`
}

type fileRoot struct {
	Options *options `hcl:"options,block"`
	Remain  hcl.Body `hcl:",remain"`
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. Expressions may refer to environment variables
// as env.NAME and call a few helper functions such as max and upper.
func Parse(src []byte, filename string) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(os.Environ()), &root)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}

	cfg := Default()
	if o := root.Options; o != nil {
		setIfPresent(&cfg.EnterStartsEdit, o.EnterStartsEdit)
		setIfPresent(&cfg.MoveAfterEnter, o.MoveAfterEnter)
		setIfPresent(&cfg.DefaultWidth, o.DefaultWidth)
		setIfPresent(&cfg.DefaultHeight, o.DefaultHeight)
		setIfPresent(&cfg.CellPadding, o.CellPadding)
		setIfPresent(&cfg.HideRowIndicators, o.HideRowIndicators)
		setIfPresent(&cfg.HideColumnIndicators, o.HideColumnIndicators)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (c Config) validate() error {
	switch {
	case c.DefaultWidth < 4:
		return errors.New("default_width must be at least 4")
	case c.DefaultHeight < 1:
		return errors.New("default_height must be at least 1")
	case c.CellPadding < 0 || 2*c.CellPadding >= c.DefaultWidth:
		return errors.New("cell_padding must be non-negative and leave room for text")
	}
	return nil
}

func evalContext(environ []string) *hcl.EvalContext {
	env := map[string]cty.Value{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}
	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		envVal = cty.MapVal(env)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
		Functions: map[string]function.Function{
			"max":      stdlib.MaxFunc,
			"min":      stdlib.MinFunc,
			"upper":    stdlib.UpperFunc,
			"lower":    stdlib.LowerFunc,
			"coalesce": stdlib.CoalesceFunc,
		},
	}
}
