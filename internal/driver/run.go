package driver

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"husk/internal/grammar"
	"husk/internal/lang"
)

// Run discovers the files named by args, fans them out to a bounded worker
// pool, and returns the aggregated Summary. It is the entry point cmd/husk
// calls for both the default pipeline run and every flag combination in
// §6, distinguished only by Options.Mode and Options.CLI.
//
// The worker pool is capped the same way the teacher's file scanner caps
// its hashing goroutines with a semaphore, generalized here to
// errgroup.Group.SetLimit since every worker already returns a single
// error-shaped result that the caller collects through a channel rather
// than a shared mutex-guarded slice.
func Run(args []string, reg *lang.Registry, loader *grammar.Loader, opts Options) (*Summary, error) {
	paths, err := Discover(args, opts)
	if err != nil {
		return nil, err
	}

	summary := newSummary()
	p := newPipeline(reg, loader, opts)

	results := make(chan FileResult, len(paths))
	var g errgroup.Group
	g.SetLimit(opts.workerCount())

	for _, path := range paths {
		path := path
		g.Go(func() error {
			results <- p.process(path)
			return nil
		})
	}

	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for i := 0; i < len(paths); i++ {
			summary.absorb(<-results)
		}
	}()

	// g.Wait never actually returns a non-nil error since process()
	// recovers every per-file failure into a FileResult, but the zero
	// value is threaded through so a future worker error (e.g. a
	// panic-to-error bridge) has somewhere to surface without changing
	// Run's signature.
	if err := g.Wait(); err != nil {
		close(results)
		return summary, err
	}
	close(results)
	collectWg.Wait()

	if err := loader.Flush(); err != nil {
		return summary, err
	}
	return summary, nil
}
