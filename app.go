package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/echoflaresat/orbitcalc/gibbs"
	"github.com/echoflaresat/orbitcalc/logging"
	"github.com/echoflaresat/orbitcalc/metrics"
	"github.com/echoflaresat/orbitcalc/tracing"
)

type config struct {
	logLevel, logFormat string
	trace, metrics      bool
}

// app holds what the subcommands share for one invocation.
type app struct {
	cfg    config
	stdout io.Writer
	stderr io.Writer

	log       *slog.Logger
	collector *metrics.Collector
	shutdown  func(context.Context) error
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.log = logging.New(logging.Config{Level: a.cfg.logLevel, Format: a.cfg.logFormat}.FromEnv(), a.stderr)
	slog.SetDefault(a.log)

	shutdown, err := tracing.Init(cmd.Context(), tracing.Config{
		Enabled:     a.cfg.trace,
		ServiceName: "orbitcalc",
		Writer:      a.stderr,
	})
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	a.collector, err = metrics.NewCollector(prometheus.NewRegistry())
	return err
}

func (a *app) teardown(ctx context.Context) error {
	tracing.Shutdown(ctx, a.shutdown)
	a.shutdown = nil

	if a.cfg.metrics && a.collector != nil {
		return a.collector.WriteText(a.stderr)
	}
	return nil
}

// measure runs fn inside a span named after op and records its outcome.
func (a *app) measure(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := otel.Tracer("github.com/echoflaresat/orbitcalc").Start(ctx, "orbitcalc."+op)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	a.collector.Observe(op, elapsed, err)
	if err != nil {
		recordError(span, err)
		a.log.Error("computation failed", "operation", op, "outcome", metrics.Outcome(err), "error", err)
		return err
	}
	a.log.Info("computation done", "operation", op, "elapsed", elapsed)
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// gibbsFailure marks an error raised while running Gibbs' method so the
// CLI can follow it with gibbs.Hint.
type gibbsFailure struct{ err error }

func (f gibbsFailure) Error() string { return f.err.Error() }
func (f gibbsFailure) Unwrap() error { return f.err }

// hintFor returns the corrective hint shown after a failed Gibbs estimate,
// or "" when err did not come from one or already carries the hint.
func hintFor(err error) string {
	var gf gibbsFailure
	if !errors.As(err, &gf) || strings.Contains(err.Error(), gibbs.Hint) {
		return ""
	}
	return gibbs.Hint
}
