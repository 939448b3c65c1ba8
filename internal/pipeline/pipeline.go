package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ybenjamin/patentprobe/internal/catalog"
	"github.com/ybenjamin/patentprobe/internal/classifier"
	"github.com/ybenjamin/patentprobe/internal/config"
	"github.com/ybenjamin/patentprobe/internal/model"
	"github.com/ybenjamin/patentprobe/internal/recommend"
)

// Prober executes a single probe target.
//
// Design decision: We depend on an interface rather than the concrete
// prober because:
//  1. Tests can stub probe outcomes without a live server
//  2. The pipeline logic is independent of transport policy
//  3. A caller wanting retries can wrap the prober without touching
//     the pipeline (retry-with-backoff belongs outside the core)
type Prober interface {
	// Probe attempts the target once and always returns an outcome.
	Probe(ctx context.Context, target model.ProbeTarget) model.Outcome
}

// Runner executes probe runs against a catalog.
type Runner struct {
	// prober performs the network attempts.
	prober Prober

	// concurrency caps simultaneous in-flight probes.
	concurrency int

	// logger for structured logging.
	logger *slog.Logger

	// mu guards report and probed during a run. Multiple probes
	// complete concurrently, so report writes are single-writer by
	// mutex discipline.
	mu sync.Mutex

	// probed tracks URLs already attempted in this run, preventing a
	// discovered link that points back into the catalog from being
	// probed twice.
	probed map[string]bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets the maximum number of concurrent probes.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner using the given prober.
func NewRunner(prober Prober, opts ...Option) *Runner {
	r := &Runner{
		prober:      prober,
		concurrency: config.DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run probes every catalog target concurrently and aggregates the
// classified results into a report.
//
// Cancellation propagates to all in-flight probes and stops new ones
// from being enqueued; the partially completed report is still valid
// and returned. The only error Run returns is a catalog validation
// failure, which indicates a bug in catalog construction.
func (r *Runner) Run(ctx context.Context, targets []model.ProbeTarget) (*model.Report, error) {
	if err := catalog.Validate(targets); err != nil {
		return nil, err
	}

	report := model.NewReport()
	r.probed = make(map[string]bool, len(targets))

	r.logger.Info("starting probe run",
		"targets", len(targets),
		"concurrency", r.concurrency,
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, target := range targets {
		g.Go(func() error {
			// Stop enqueueing work once the run is cancelled. Targets
			// never started simply have no entry in the report.
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			r.claim(target.URL)
			result := classifier.Classify(r.prober.Probe(gctx, target))
			r.record(report, result)

			// Breadth-first, depth 1: discovered targets are probed
			// from the same pool slot, each at most once across the
			// whole run. Their classification never yields further
			// secondaries (the classifier enforces the depth cap).
			for _, sec := range result.Secondary {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if !r.claim(sec.URL) {
					r.logger.Debug("skipping already-probed URL",
						"label", sec.Label,
						"url", sec.URL,
					)
					continue
				}
				secResult := classifier.Classify(r.prober.Probe(gctx, sec))
				r.record(report, secResult)
			}

			return nil
		})
	}

	// Worker errors are only context cancellations; the report carries
	// everything that completed.
	if err := g.Wait(); err != nil {
		report.Cancelled = true
		r.logger.Warn("probe run cancelled", "completed", report.TotalResults())
	}

	report.Elapsed = time.Since(start)
	report.Recommendations = recommend.Recommend(report)

	r.logger.Info("probe run complete",
		"results", report.TotalResults(),
		"elapsed", report.Elapsed,
	)

	return report, nil
}

// claim marks a URL as probed. It returns false if the URL was already
// claimed by this run.
func (r *Runner) claim(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.probed[url] {
		return false
	}
	r.probed[url] = true
	return true
}

// record folds a classified result into the report.
func (r *Runner) record(report *model.Report, result *model.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.AddResult(result)

	r.logger.Debug("classified endpoint",
		"label", result.Label,
		"category", result.Category.String(),
		"secondaries", len(result.Secondary),
	)
}
