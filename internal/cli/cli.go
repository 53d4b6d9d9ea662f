package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/singlezone/building"
	"github.com/specialistvlad/singlezone/internal/app"
	"github.com/specialistvlad/singlezone/internal/optionsfile"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// assignments collects every -set flag in order.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(v string) error {
	*a = append(*a, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("singlezone", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
singlezone - Assembles single-zone test buildings from an options file.

Usage:
  singlezone [options] OPTIONS_PATH

Arguments:
  OPTIONS_PATH
    Path to an .hcl, .yaml or .yml file, or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	buildingFlag := flagSet.String("building", "", "Name of the building to assemble. Empty assembles all of them.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	baselineFlag := flagSet.Bool("print-baseline", false, "Print the default building as HCL and exit.")
	var setFlags assignments
	flagSet.Var(&setFlags, "set", "Override an attribute on every building, e.g. -set 'heating_power=baseline.zone_volume*25'. Repeatable.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *baselineFlag {
		src, err := optionsfile.Encode("baseline", building.DefaultOptions())
		if err != nil {
			return nil, false, &ExitError{Code: 1, Message: err.Error()}
		}
		if _, err := output.Write(src); err != nil {
			return nil, false, &ExitError{Code: 1, Message: err.Error()}
		}
		return nil, true, nil
	}

	path := flagSet.Arg(0)
	slog.Debug("Options path determined.", "path", path)

	if path == "" {
		slog.Debug("No options path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected a single OPTIONS_PATH argument"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(*logLevelFlag)); err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		OptionsPath: path,
		Building:    *buildingFlag,
		Assignments: setFlags,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
