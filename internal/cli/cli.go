package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError carries the process exit code for a failed invocation.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config is the validated result of Parse.
type Config struct {
	ConfigPath string
	DataPath   string
	LogLevel   string
	LogFormat  string
	LogFile    string
	Rows       int
	Columns    int
	Splash     bool
	// Header takes the first CSV row as column labels.
	Header bool
}

// Parse processes command-line arguments. It returns the populated Config,
// a boolean telling the caller to exit cleanly, or an *ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("grider", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
grider - a terminal spreadsheet.

Usage:
  grider [options] [DATA_PATH]

Arguments:
  DATA_PATH
    CSV file used to seed the grid. Same as -data.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "grider.hcl", "Path to the HCL settings file. Missing files use defaults.")
	dataFlag := flagSet.String("data", "", "CSV file used to seed the grid.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logFileFlag := flagSet.String("log-file", "grider.log", "File the log is written to.")
	rowsFlag := flagSet.Int("rows", 100, "Number of rows of an empty sheet.")
	columnsFlag := flagSet.Int("columns", 26, "Number of columns of an empty sheet.")
	splashFlag := flagSet.Bool("splash", false, "Show the title screen before the sheet.")
	headerFlag := flagSet.Bool("header", false, "Use the first CSV row as column labels.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	dataPath := *dataFlag
	if dataPath == "" && flagSet.NArg() > 0 {
		dataPath = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "too many arguments: expected at most one DATA_PATH"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *rowsFlag < 1 || *columnsFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid sheet size: rows and columns must be positive"}
	}

	return &Config{
		ConfigPath: *configFlag,
		DataPath:   dataPath,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		LogFile:    *logFileFlag,
		Rows:       *rowsFlag,
		Columns:    *columnsFlag,
		Splash:     *splashFlag,
		Header:     *headerFlag,
	}, false, nil
}
