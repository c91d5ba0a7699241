package supercompiler

import (
	"context"
	"sync"

	"github.com/gitrdm/spsc/internal/parallel"
	"github.com/gitrdm/spsc/pkg/sll"
)

// Result is the outcome of one job of BuildAll.
type Result struct {
	Expr sll.Expr
	Tree *Tree
	Err  error
}

// BuildAll builds the process tree of every expression on a pool of
// workers goroutines (0 means one per CPU). Every job gets its own
// Supercompiler and therefore its own name supply, so the trees are the
// same as those of sequential runs. Results are in the order of exprs.
func BuildAll(ctx context.Context, prog *sll.Program, cfg *Config, exprs []sll.Expr, workers int) []Result {
	results := make([]Result, len(exprs))
	pool := parallel.NewWorkerPool(workers)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	for i, e := range exprs {
		results[i].Expr = e
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i].Tree, results[i].Err = New(prog, cfg).BuildTree(ctx, e)
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()
	return results
}
