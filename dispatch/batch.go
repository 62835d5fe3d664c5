package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/seb7887/gofw/fetchx"
	"go.uber.org/multierr"
)

// ErrPoolStopped is reported for jobs submitted to a stopped pool.
var ErrPoolStopped = errors.New("dispatch: pool stopped")

// Doer is the part of fetchx.Client used by Run.
type Doer interface {
	Do(ctx context.Context, method, pathTemplate string, opts ...fetchx.RequestOption) (*fetchx.Result, error)
}

// Job is one call to run.
type Job struct {
	// Key groups jobs that must run one after another. Empty means Path.
	Key string

	Method  string
	Path    string
	Options []fetchx.RequestOption
}

func (j Job) key() string {
	if j.Key != "" {
		return j.Key
	}
	return j.Path
}

// Outcome is the result of one job. Exactly one of Result and Err is set.
type Outcome struct {
	Job    Job
	Result *fetchx.Result
	Err    error
}

// Run executes jobs concurrently on pool and waits for all of them.
// Outcomes are returned in job order. The returned error combines the errors
// of every failed job; non-2xx responses are not errors.
func Run(ctx context.Context, doer Doer, pool *Pool, jobs []Job) ([]Outcome, error) {
	var (
		wg       sync.WaitGroup
		outcomes = make([]Outcome, len(jobs))
	)

	for i, job := range jobs {
		outcomes[i].Job = job

		wg.Add(1)
		accepted := pool.Submit(job.key(), func() {
			defer wg.Done()
			res, err := doer.Do(ctx, job.Method, job.Path, job.Options...)
			outcomes[i].Result, outcomes[i].Err = res, err
		})
		if !accepted {
			wg.Done()
			outcomes[i].Err = ErrPoolStopped
		}
	}

	wg.Wait()

	var err error
	for _, o := range outcomes {
		if o.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s %s: %w", o.Job.Method, o.Job.Path, o.Err))
		}
	}

	return outcomes, err
}
