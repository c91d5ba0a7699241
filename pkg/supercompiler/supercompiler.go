// Package supercompiler builds process trees for SLL programs.
//
// A process tree is the record of a symbolic evaluation: every node holds a
// configuration (an expression with free variables) and its children hold
// the configurations it steps to. Construction repeatedly picks the first
// unprocessed leaf and either
//   - folds it, when an ancestor of the same kind generalises it, by
//     replacing it with a let that instantiates the ancestor, or
//   - unfolds it, by driving it one step and attaching the successors.
//
// A call is processed once an ancestor holds the same call up to renaming,
// which stops the unfolding of recurring configurations. This syntactic
// check does not guarantee termination for every program; use
// Config.MaxSteps or a context deadline to bound a run.
package supercompiler

import (
	"context"
	"fmt"

	"github.com/gitrdm/spsc/pkg/sll"
)

// Supercompiler builds process trees for one program.
type Supercompiler struct {
	prog   *sll.Program
	driver *Driver
	cfg    *Config
}

// New creates a supercompiler with its own name supply. A nil config means
// DefaultConfig.
func New(prog *sll.Program, cfg *Config) *Supercompiler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Supercompiler{
		prog:   prog,
		driver: NewDriver(prog, sll.NewNameSupply()),
		cfg:    cfg,
	}
}

// Driver returns the driver used for unfolding.
func (sc *Supercompiler) Driver() *Driver {
	return sc.driver
}

// BuildTree grows the process tree of e until every leaf is processed.
//
// A driving error aborts construction and no tree is returned. When the
// step limit is hit or ctx is done, the incomplete tree is returned along
// with the error so callers can inspect it; it must not be treated as a
// result.
func (sc *Supercompiler) BuildTree(ctx context.Context, e sll.Expr) (*Tree, error) {
	sc.driver.Names().Avoid(e)
	t := NewTree(e)
	sc.snapshot(t)
	steps := 0
	for {
		leaf, ok := t.UnprocessedLeaf()
		if !ok {
			sc.tracef("done after %d steps, %d nodes", steps, t.Len())
			return t, nil
		}
		if err := ctx.Err(); err != nil {
			return t, fmt.Errorf("BuildTree: aborted after %d steps: %w", steps, err)
		}
		if sc.cfg.MaxSteps > 0 && steps >= sc.cfg.MaxSteps {
			return t, fmt.Errorf("BuildTree: %w (%d)", ErrStepLimitExceeded, sc.cfg.MaxSteps)
		}
		if err := sc.grow(t, leaf); err != nil {
			return nil, fmt.Errorf("BuildTree: %w", err)
		}
		steps++
		sc.snapshot(t)
	}
}

// grow performs one fold or unfold at leaf.
func (sc *Supercompiler) grow(t *Tree, leaf NodeID) error {
	e := t.Expr(leaf)
	if e.Kind() == sll.KindFCall || e.Kind() == sll.KindGCall {
		for _, a := range t.Ancestors(leaf) {
			ae := t.Expr(a)
			if ae.Kind() != e.Kind() {
				continue
			}
			sub, ok := sll.MatchAgainst(ae, e)
			if !ok {
				continue
			}
			let := sll.NewLet(ae, sub.Bindings()...)
			sc.tracef("fold %s into ancestor %d as %s", e, a, let)
			t.Replace(leaf, let)
			return nil
		}
	}
	steps, err := sc.driver.Drive(e)
	if err != nil {
		return err
	}
	sc.tracef("unfold %s into %d children", e, len(steps))
	t.AddChildren(leaf, steps)
	return nil
}

func (sc *Supercompiler) snapshot(t *Tree) {
	if sc.cfg.TraceWriter == nil {
		return
	}
	fmt.Fprintln(sc.cfg.TraceWriter, t.String())
}

// Supercompile is shorthand for New(prog, cfg).BuildTree(ctx, e).
func Supercompile(ctx context.Context, prog *sll.Program, cfg *Config, e sll.Expr) (*Tree, error) {
	return New(prog, cfg).BuildTree(ctx, e)
}
