package splitplan

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cuesplit/internal/logging"
)

// JobKind selects the planning entry point for a Job.
type JobKind string

const (
	JobStandalone JobKind = "standalone"
	JobEmbedded   JobKind = "embedded"
)

// Job describes one album to plan.
type Job struct {
	Kind JobKind
	// Root and CuePath are used by standalone jobs.
	Root    string
	CuePath string
	// AudioPath and CueText are used by embedded jobs.
	AudioPath string
	CueText   string
}

// Source returns the path identifying the job's input.
func (j Job) Source() string {
	if j.Kind == JobEmbedded {
		return j.AudioPath
	}
	return j.CuePath
}

// Outcome is the result of one Job.
type Outcome struct {
	Job  Job
	Plan AlbumProcess
	Err  error
}

// Batch plans jobs with at most workers albums in flight. Outcomes are
// returned in job order; per-album failures are reported in Outcome.Err.
// Jobs not started before ctx is cancelled report the context error.
func (p *Planner) Batch(ctx context.Context, jobs []Job, workers int) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	if workers <= 0 {
		workers = 1
	}

	logger := logging.WithContext(ctx, p.logger)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		outcomes[i].Job = job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			plan, err := p.plan(job)
			outcomes[i].Plan = plan
			outcomes[i].Err = err
			if err != nil {
				logger.Warn("album planning failed",
					logging.String("source", job.Source()),
					logging.Error(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("batch planning finished",
		logging.Int("albums", len(jobs)),
		logging.Int("workers", workers),
	)
	return outcomes
}

func (p *Planner) plan(job Job) (AlbumProcess, error) {
	switch job.Kind {
	case JobStandalone:
		return p.FromStandaloneCue(job.Root, job.CuePath)
	case JobEmbedded:
		return p.FromEmbeddedCue(job.AudioPath, job.CueText)
	default:
		return AlbumProcess{}, fmt.Errorf("unknown job kind %q", job.Kind)
	}
}
