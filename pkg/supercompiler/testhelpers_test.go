package supercompiler

import (
	"testing"

	"github.com/gitrdm/spsc/pkg/sll"
	"github.com/xyproto/env/v2"
)

// shouldRunHeavy returns true when heavy/long-running tests should run even
// if the Go test suite is invoked in short mode. Set SPSC_FORCE_HEAVY=1
// (or "true") to override short-mode skips.
func shouldRunHeavy() bool {
	return env.Bool("SPSC_FORCE_HEAVY")
}

const arithmetic = `
	gAdd(Z(), y) = y;
	gAdd(S(x), y) = S(gAdd(x, y));
	gMult(Z(), y) = Z();
	gMult(S(x), y) = gAdd(gMult(x, y), y);
	fSqr(x) = gMult(x, x);
	gEven(Z()) = True();
	gEven(S(x)) = gOdd(x);
	gOdd(Z()) = False();
	gOdd(S(x)) = gEven(x);
`

const lists = `
	gAppend(Nil(), vs) = vs;
	gAppend(Cons(u, us), vs) = Cons(u, gAppend(us, vs));
	gRev(Nil(), acc) = acc;
	gRev(Cons(x, xs), acc) = gRev(xs, Cons(x, acc));
`

func mustProgram(t testing.TB, src string) *sll.Program {
	t.Helper()
	prog, err := sll.ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return prog
}

func mustExpr(t testing.TB, src string) sll.Expr {
	t.Helper()
	e, err := sll.ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", src, err)
	}
	return e
}

func renderSteps(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Expr.String()
		if s.Contraction != nil {
			out[i] += " [" + s.Contraction.String() + "]"
		}
	}
	return out
}
