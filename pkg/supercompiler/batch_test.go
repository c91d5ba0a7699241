package supercompiler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gitrdm/spsc/pkg/sll"
)

func TestBuildAll(t *testing.T) {
	prog := mustProgram(t, arithmetic+lists)
	srcs := []string{"gAdd(x, y)", "gAdd(gAdd(x, y), z)", "gNope(x)", "gAppend(gAppend(xs, ys), zs)"}
	exprs := make([]sll.Expr, len(srcs))
	for i, s := range srcs {
		exprs[i] = mustExpr(t, s)
	}

	results := BuildAll(context.Background(), prog, nil, exprs, 2)
	if len(results) != len(exprs) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Expr != exprs[i] {
			t.Errorf("result %d is for %s, want %s", i, r.Expr, exprs[i])
		}
		if i == 2 {
			if !errors.Is(r.Err, ErrUnknownFunction) {
				t.Errorf("gNope: got %v", r.Err)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("%s: %v", r.Expr, r.Err)
			continue
		}
		// Each job owns its name supply, so batch trees equal sequential ones.
		seq, err := New(prog, nil).BuildTree(context.Background(), exprs[i])
		if err != nil {
			t.Fatal(err)
		}
		if r.Tree.String() != seq.String() {
			t.Errorf("%s: batch tree differs from sequential tree:\n%s\n---\n%s", r.Expr, r.Tree, seq)
		}
	}
}

func TestBuildAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prog := mustProgram(t, arithmetic)
	results := BuildAll(ctx, prog, nil, []sll.Expr{mustExpr(t, "gAdd(x, y)")}, 1)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", results[0].Err)
	}
}

func TestBuildAllHeavy(t *testing.T) {
	if testing.Short() && !shouldRunHeavy() {
		t.Skip("skipping heavy batch test in short mode")
	}
	prog := mustProgram(t, arithmetic+lists)
	var exprs []sll.Expr
	for i := 0; i < 200; i++ {
		exprs = append(exprs, mustExpr(t, fmt.Sprintf("gAdd(gAdd(x%d, y), z)", i)))
	}
	for _, r := range BuildAll(context.Background(), prog, nil, exprs, 0) {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Expr, r.Err)
		}
		if r.Tree.Len() != 8 {
			t.Errorf("%s: %d nodes, want 8", r.Expr, r.Tree.Len())
		}
	}
}
