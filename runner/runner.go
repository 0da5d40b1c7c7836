// Package runner fans selections out across a bounded worker pool,
// grounded on sqldef's database/concurrent.go ConcurrentMapFuncWithError:
// an order-preserving concurrent map with a SetLimit-bounded
// golang.org/x/sync/errgroup.Group (spec.md §5 — "embarrassingly
// parallel...run N selections on N workers with no coordination beyond
// joining at the end").
package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/engine"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/planner"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/rowset"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/selection"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/shaper"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
)

// Result is one selection's outcome: either shaped output columns, or
// an error that should abort only this selection (spec.md §4.7).
type Result struct {
	SelectionID int
	Columns     []shaper.Column
	Err         error
}

// RunAll compiles, executes, and shapes every selection against the
// shared, read-only universe and input row set. Each selection runs
// against its own rowset.RowSet.Clone(), so workers never mutate the
// shared input row set in place (spec.md §5). concurrency <= 0 means no
// limit.
func RunAll(ctx context.Context, uni *universe.Universe, rs *rowset.RowSet, sels []*selection.Selection, keyCode string, concurrency int) []Result {
	results := make([]Result, len(sels))

	g, _ := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, sel := range sels {
		i, sel := i, sel
		g.Go(func() error {
			results[i] = runOne(uni, rs, sel, keyCode)
			return nil
		})
	}
	_ = g.Wait() // worker funcs never return an error: failures are captured per Result

	return results
}

func runOne(uni *universe.Universe, rs *rowset.RowSet, sel *selection.Selection, keyCode string) Result {
	res := Result{SelectionID: sel.ID()}

	plan, err := planner.Compile(uni, sel)
	if err != nil {
		res.Err = err
		return res
	}

	private := rs.Clone()
	eng := engine.New(private)
	if err := eng.Execute(plan); err != nil {
		res.Err = err
		return res
	}

	cols, err := shaper.Shape(plan, keyCode, sel.OutputSettings(), private)
	if err != nil {
		res.Err = err
		return res
	}
	res.Columns = cols
	return res
}
