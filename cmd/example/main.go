// Package main walks through the spsc library: the SLL term algebra,
// single driving steps, process trees with folding, and batch runs.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gitrdm/spsc/pkg/sll"
	"github.com/gitrdm/spsc/pkg/supercompiler"
)

const program = `
# Peano addition and multiplication.
gAdd(Z(), y) = y;
gAdd(S(x), y) = S(gAdd(x, y));
gMult(Z(), y) = Z();
gMult(S(x), y) = gAdd(y, gMult(x, y));

# Lists.
gAppend(Nil(), vs) = vs;
gAppend(Cons(u, us), vs) = Cons(u, gAppend(us, vs));
gRev(Nil(), ys) = ys;
gRev(Cons(x, xs), ys) = gRev(xs, Cons(x, ys));

fGrow(x) = fGrow(S(x));
`

func main() {
	fmt.Println("=== spsc Examples ===")
	fmt.Println()

	prog, err := sll.ParseProgram(program)
	if err != nil {
		log.Fatal(err)
	}
	if err := prog.Validate(); err != nil {
		log.Fatal(err)
	}

	matching()
	driving(prog)
	processTree(prog)
	folding(prog)
	batch(prog)
}

// matching demonstrates substitutions and instance checks.
func matching() {
	fmt.Println("1. Matching:")

	general := sll.MustParseExpr("gAdd(x, y)")
	special := sll.MustParseExpr("gAdd(S(a), Z())")

	sub, ok := sll.MatchAgainst(general, special)
	fmt.Printf("   %s matches %s => %v %s\n", general, special, ok, sub)
	fmt.Printf("   applied back => %s\n", sll.ApplySubst(general, sub))
	fmt.Printf("   renaming? %v\n", sll.Equiv(general, sll.MustParseExpr("gAdd(p, q)")))
	fmt.Println()
}

// driving shows the successors of a single step.
func driving(prog *sll.Program) {
	fmt.Println("2. Driving:")

	d := supercompiler.NewDriver(prog, nil)
	for _, src := range []string{"gAdd(S(Z()), y)", "gAdd(x, y)", "gAdd(gAdd(x, y), z)"} {
		steps, err := d.Drive(sll.MustParseExpr(src))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("   %s\n", src)
		for _, s := range steps {
			if s.Contraction != nil {
				fmt.Printf("     -> %s  [%s]\n", s.Expr, s.Contraction)
			} else {
				fmt.Printf("     -> %s\n", s.Expr)
			}
		}
	}
	fmt.Println()
}

// processTree builds a complete tree for an associativity example.
func processTree(prog *sll.Program) {
	fmt.Println("3. Process Tree:")

	tree, err := supercompiler.Supercompile(context.Background(), prog, nil, sll.MustParseExpr("gAdd(gAdd(x, y), z)"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tree)
	fmt.Printf("   %d nodes, %d leaves\n", tree.Len(), len(tree.Leaves()))
	fmt.Println()
}

// folding shows a growing configuration recognised as an instance of its
// ancestor.
func folding(prog *sll.Program) {
	fmt.Println("4. Folding:")

	tree, err := supercompiler.Supercompile(context.Background(), prog, nil, sll.MustParseExpr("fGrow(n)"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tree)

	// Reversal into an empty accumulator never repeats a configuration.
	cfg := supercompiler.DefaultConfig()
	cfg.MaxSteps = 200
	tree, err = supercompiler.Supercompile(context.Background(), prog, cfg, sll.MustParseExpr("gRev(xs, Nil())"))
	fmt.Printf("   gRev(xs, Nil()) => %v (%d nodes so far)\n", err, tree.Len())
	fmt.Println()
}

// batch builds several trees concurrently.
func batch(prog *sll.Program) {
	fmt.Println("5. Batch:")

	exprs := []sll.Expr{
		sll.MustParseExpr("gAdd(x, y)"),
		sll.MustParseExpr("gAppend(gAppend(xs, ys), zs)"),
		sll.MustParseExpr("gRev(xs, ys)"),
		sll.MustParseExpr("gMult(x, y)"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := supercompiler.DefaultConfig()
	cfg.MaxSteps = 1000

	start := time.Now()
	results := supercompiler.BuildAll(ctx, prog, cfg, exprs, 0)
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("   %-30s error: %v\n", r.Expr, r.Err)
			continue
		}
		fmt.Printf("   %-30s %d nodes\n", r.Expr, r.Tree.Len())
	}
	fmt.Printf("   finished in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Println()
}
