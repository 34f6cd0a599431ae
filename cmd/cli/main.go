// Command scenario-helper reads a ScenarioInput (JSON or YAML) from a file
// argument or stdin, evaluates its queries, and writes the Report JSON to
// stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cxd309/scenario-helper/internal/engine"
	"github.com/cxd309/scenario-helper/internal/logging"
	"github.com/cxd309/scenario-helper/internal/scenario"
)

type options struct {
	format   string
	logLevel string
	maxSteps int
	epsilon  float64
	workers  int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "scenario-helper [file]",
		Short:         "Evaluate road-geometry queries for driving scenarios",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cmd.Flags(), opts, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", "", "input format: json or yaml (default: from file extension, json for stdin)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.IntVar(&opts.maxSteps, "max-steps", scenario.DefaultMaxSteps, "step bound for every traversal (0 = unbounded)")
	flags.Float64Var(&opts.epsilon, "epsilon", 0, "tolerance below which driving lines count as parallel")
	flags.IntVar(&opts.workers, "workers", engine.DefaultWorkers, "queries evaluated concurrently")
	return cmd
}

func run(ctx context.Context, flags *pflag.FlagSet, opts options, args []string, stdin io.Reader, stdout io.Writer) error {
	logger, err := logging.New(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var (
		data   []byte
		format = engine.FormatJSON
	)
	if len(args) > 0 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		format = engine.FormatFromPath(args[0])
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return errors.Wrap(err, "reading input")
	}
	if opts.format != "" {
		if format, err = engine.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	input, err := engine.Decode(data, format)
	if err != nil {
		return err
	}
	applyOverrides(&input, flags, opts)

	report, err := engine.Execute(ctx, input, logger)
	if err != nil {
		logger.Error("scenario failed", zap.Error(err))
		return errors.Wrap(err, "scenario error")
	}
	out, err := engine.Encode(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

// applyOverrides copies explicitly set flags over the values from the input file.
func applyOverrides(input *engine.ScenarioInput, flags *pflag.FlagSet, opts options) {
	if flags.Changed("workers") {
		input.Meta.Workers = opts.workers
	}
	if !flags.Changed("max-steps") && !flags.Changed("epsilon") {
		return
	}
	if input.Helper == nil {
		cfg := scenario.DefaultConfig()
		input.Helper = &cfg
	}
	if flags.Changed("max-steps") {
		input.Helper.MaxSteps = opts.maxSteps
	}
	if flags.Changed("epsilon") {
		input.Helper.Epsilon = opts.epsilon
	}
}
