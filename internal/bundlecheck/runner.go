package bundlecheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/vgsales/pkg/logger"
)

// Result is the outcome of one check.
type Result struct {
	Check  string
	Case   Case
	Issues []string
}

// OK reports whether the check passed.
func (r Result) OK() bool { return len(r.Issues) == 0 }

// Report collects every result of a sweep.
type Report struct {
	BaseURL  string
	Started  time.Time
	Duration time.Duration
	Results  []Result
}

// Failed counts the failing checks.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

func (r *Report) add(check string, c Case, issues []string) {
	r.Results = append(r.Results, Result{Check: check, Case: c, Issues: issues})
}

// Run executes the sweep against cfg.BaseURL and writes the report to w.
// It returns ErrCheckFailed when any check reported an issue.
func Run(ctx context.Context, cfg *Config, w io.Writer) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("bundlecheck")
	cl := newClient(cfg.BaseURL, cfg.Timeout)
	report := &Report{BaseURL: cfg.BaseURL, Started: time.Now()}

	log.Info(ctx, "starting bundle check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("cases", len(cfg.Cases())),
		logger.Bool("stateful", !cfg.SkipStateful))

	if _, err := cl.do(ctx, http.MethodGet, "/healthz", nil); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	if err := sweepBundles(ctx, cl, cfg, report); err != nil {
		return nil, err
	}
	if !cfg.SkipStateful {
		if err := sweepTabSwitches(ctx, cl, cfg, report); err != nil {
			return nil, err
		}
	}

	report.Duration = time.Since(report.Started)
	if _, err := io.WriteString(w, Render(report, cfg.Verbose)); err != nil {
		return report, fmt.Errorf("write report: %w", err)
	}

	log.Info(ctx, "bundle check completed",
		logger.Int("checks", len(report.Results)),
		logger.Int("failed", report.Failed()),
		logger.String("duration", report.Duration.String()))

	if report.Failed() > 0 {
		return report, fmt.Errorf("%w: %d of %d checks", ErrCheckFailed, report.Failed(), len(report.Results))
	}
	return report, nil
}

// sweepBundles fetches every case twice and checks content and idempotence.
func sweepBundles(ctx context.Context, cl *client, cfg *Config, report *Report) error {
	for _, c := range cfg.Cases() {
		first, err := cl.bundle(ctx, c)
		if err != nil {
			return err
		}
		second, err := cl.bundle(ctx, c)
		if err != nil {
			return err
		}
		report.add("bundle", c, verifyBundle(c, first.bundle))
		report.add("idempotence", c, verifyIdentical("repeat", first.raw, second.raw))
	}
	return nil
}

// sweepTabSwitches drives the shared state through top performers, another
// tab and back, for every region and count. The state is restored afterwards.
func sweepTabSwitches(ctx context.Context, cl *client, cfg *Config, report *Report) (err error) {
	saved, err := cl.state(ctx)
	if err != nil {
		return err
	}
	defer func() {
		region, count, tab := saved.Region, saved.ResultCount, saved.Tab
		if _, rerr := cl.apply(ctx, stateChange{Region: &region, ResultCount: &count, Tab: &tab}); rerr != nil && err == nil {
			err = fmt.Errorf("restore state: %w", rerr)
		}
	}()

	top, other := tabTopPerformers, cfg.Tabs[0]
	for _, t := range cfg.Tabs {
		if t != tabTopPerformers {
			other = t
			break
		}
	}

	for _, region := range cfg.Regions {
		for _, count := range cfg.Counts {
			c := Case{Region: region, Count: count, Tab: top}
			before, err := cl.apply(ctx, stateChange{Region: &region, ResultCount: &count, Tab: &top})
			if err != nil {
				return err
			}
			away, err := cl.apply(ctx, stateChange{Tab: &other})
			if err != nil {
				return err
			}
			after, err := cl.apply(ctx, stateChange{Tab: &top})
			if err != nil {
				return err
			}
			pure, err := cl.bundle(ctx, c)
			if err != nil {
				return err
			}

			report.add("tab switch", c, verifyIdentical(top+" -> "+other+" -> "+top, before.raw, after.raw))
			report.add("placeholder", Case{Region: region, Count: count, Tab: other},
				verifyBundle(Case{Region: region, Count: count, Tab: other}, away.bundle))
			report.add("apply vs bundle", c, verifyIdentical("apply", before.raw, pure.raw))
		}
	}
	return nil
}
