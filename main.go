package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if terr := a.teardown(ctx); err == nil {
		err = terr
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(stderr, hint)
		}
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orbitcalc",
		Short: "Orbital elements from observations and local sidereal time",
		Long: `orbitcalc - two-body orbit determination helpers

Compute the six classical orbital elements from a state vector or from three
coplanar position vectors (Gibbs' method), and the local sidereal time of a
site from its date, UT clock and east longitude.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.logLevel, "log-level", "", "Log level: debug, info, warn, error (env ORBITCALC_LOG_LEVEL)")
	flags.StringVar(&a.cfg.logFormat, "log-format", "", "Log format: text or json (env ORBITCALC_LOG_FORMAT)")
	flags.BoolVar(&a.cfg.trace, "trace", false, "Write OpenTelemetry spans to stderr")
	flags.BoolVar(&a.cfg.metrics, "metrics", false, "Dump Prometheus metrics to stderr on exit")

	root.AddCommand(
		a.elementsCmd(),
		a.gibbsCmd(),
		a.batchCmd(),
		a.siderealCmd(),
	)
	return root
}
