// Package main is the spsc command: it supercompiles SLL expressions and
// prints their process trees.
//
// Usage:
//
//	spsc -program add.sll -exp 'gAdd(gAdd(x, y), z)'
//	spsc -program add.sll -exp 'gAdd(x, y)' -exp 'fDouble(x)' -workers 4
//	spsc -program add.sll -exp 'gAdd(x, y)' -trace -watch
//
// SPSC_MAX_STEPS and SPSC_TRACE set the defaults of -max-steps and -v.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/gitrdm/spsc/pkg/sll"
	"github.com/gitrdm/spsc/pkg/supercompiler"
)

// exprList collects repeated -exp flags.
type exprList []string

func (l *exprList) String() string { return strings.Join(*l, "; ") }

func (l *exprList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

type options struct {
	programPath string
	exprs       []string
	trace       bool
	workers     int
	cfg         *supercompiler.Config
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("spsc: ")

	cfg := supercompiler.ConfigFromEnv()
	var exprs exprList
	programPath := flag.String("program", "", "SLL program file")
	flag.Var(&exprs, "exp", "expression to supercompile (repeatable)")
	maxSteps := flag.Int("max-steps", cfg.MaxSteps, "abort after this many growth steps (0 for no limit)")
	trace := flag.Bool("trace", false, "print the tree after every growth step")
	verbose := flag.Bool("v", cfg.Trace, "log every fold and unfold")
	workers := flag.Int("workers", 0, "concurrent constructions when several -exp are given (0 for one per CPU)")
	watch := flag.Bool("watch", false, "run again whenever the program file changes")
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		info := supercompiler.GetVersionInfo()
		fmt.Printf("spsc %s (%s)\n", info.Version, info.GoVersion)
		return
	}
	if *programPath == "" || len(exprs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: spsc -program <file.sll> -exp <expression> [-exp ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg.MaxSteps = *maxSteps
	cfg.Trace = *verbose
	opts := options{
		programPath: *programPath,
		exprs:       exprs,
		trace:       *trace,
		workers:     *workers,
		cfg:         cfg,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, opts, os.Stdout)
	if !*watch {
		if err != nil {
			log.Print(err)
			os.Exit(1)
		}
		return
	}
	if err != nil {
		log.Print(err)
	}
	err = watchFile(ctx, opts.programPath, func() {
		if err := run(ctx, opts, os.Stdout); err != nil {
			log.Print(err)
		}
	})
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// run loads the program and prints the tree of every expression.
func run(ctx context.Context, opts options, out io.Writer) error {
	src, err := os.ReadFile(opts.programPath)
	if err != nil {
		return err
	}
	prog, err := sll.ParseProgram(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", opts.programPath, err)
	}
	if err := prog.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			log.Printf("warning: %s", line)
		}
	}

	exprs := make([]sll.Expr, len(opts.exprs))
	for i, text := range opts.exprs {
		if exprs[i], err = sll.ParseExpr(text); err != nil {
			return fmt.Errorf("expression %q: %w", text, err)
		}
	}

	if len(exprs) == 1 {
		cfg := *opts.cfg
		if opts.trace {
			cfg.TraceWriter = out
		}
		tree, err := supercompiler.Supercompile(ctx, prog, &cfg, exprs[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, tree)
		return nil
	}

	// Trees of concurrent runs would interleave, so -trace only applies to
	// single expressions.
	var errs []error
	for _, r := range supercompiler.BuildAll(ctx, prog, opts.cfg, exprs, opts.workers) {
		fmt.Fprintf(out, "== %s\n", r.Expr)
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Expr, r.Err))
			continue
		}
		fmt.Fprintln(out, r.Tree)
	}
	return errors.Join(errs...)
}
