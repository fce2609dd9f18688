package gibbs

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/orbitcalc/orbit"
)

const tracerName = "github.com/echoflaresat/orbitcalc/gibbs"

// Result is the outcome of one triple in a batch.
type Result struct {
	Index    int
	Triple   Triple
	Elements orbit.Elements
	Trace    Trace
	Err      error
}

// Observer is notified after every estimate in a batch. Implementations must
// be safe for concurrent use.
type Observer interface {
	ObserveEstimate(elapsed time.Duration, err error)
}

// BatchOptions configures EstimateAll.
type BatchOptions struct {
	Workers  int // <= 0 uses GOMAXPROCS
	Mu       float64
	Observer Observer
}

// EstimateAll runs Estimate over triples on a bounded pool of workers.
// Per-triple failures are reported in Result.Err; only ctx cancellation
// aborts the batch. Results are in input order.
func EstimateAll(ctx context.Context, triples []Triple, opts BatchOptions) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "gibbs.EstimateAll")
	defer span.End()
	span.SetAttributes(
		attribute.Int("gibbs.triples", len(triples)),
		attribute.Int("gibbs.workers", workers),
	)

	results := make([]Result, len(triples))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, tr := range triples {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, s := tracer.Start(gctx, "gibbs.Estimate")
			s.SetAttributes(attribute.Int("gibbs.index", i))
			start := time.Now()

			var trace Trace
			el, err := tr.Estimate(WithMu(opts.Mu), WithTrace(&trace))
			if opts.Observer != nil {
				opts.Observer.ObserveEstimate(time.Since(start), err)
			}
			if err != nil {
				s.RecordError(err)
				s.SetStatus(codes.Error, err.Error())
			}
			s.End()

			results[i] = Result{Index: i, Triple: tr, Elements: el, Trace: trace, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
