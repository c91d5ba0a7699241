package supercompiler

import (
	"fmt"

	"github.com/gitrdm/spsc/pkg/sll"
)

// Contraction records that a node was obtained by specialising Var to
// Pattern during a case split.
type Contraction struct {
	Var     *sll.Var
	Pattern *sll.Pattern
}

func (c *Contraction) String() string {
	return c.Var.String() + "=" + c.Pattern.String()
}

// Step is one successor configuration produced by driving.
type Step struct {
	Expr        sll.Expr
	Contraction *Contraction
}

// Driver performs single driving steps over a program. Fresh variables for
// case splits come from the driver's own name supply.
type Driver struct {
	prog  *sll.Program
	names *sll.NameSupply
}

// NewDriver creates a driver. A nil supply gets a new one. The supply is
// moved past any v_<n> variable written in the program.
func NewDriver(prog *sll.Program, names *sll.NameSupply) *Driver {
	if names == nil {
		names = sll.NewNameSupply()
	}
	names.AvoidProgram(prog)
	return &Driver{prog: prog, names: names}
}

// Names returns the supply used for fresh pattern variables.
func (d *Driver) Names() *sll.NameSupply {
	return d.names
}

// Drive returns the successors of e in order:
//   - a constructor decomposes into its arguments
//   - an f-call unfolds into the rule body
//   - a g-call on a constructor selects and unfolds the matching rule
//   - a g-call on a variable splits into one successor per rule of the
//     g-function, each with a contraction of the variable
//   - a g-call on anything else drives the scrutinee and rebuilds the call
//     around each of its successors
//   - a let yields its body followed by every bound value
//
// Fresh names never coincide with a variable of e.
func (d *Driver) Drive(e sll.Expr) ([]Step, error) {
	d.names.Avoid(e)
	return d.drive(e)
}

func (d *Driver) drive(e sll.Expr) ([]Step, error) {
	switch t := e.(type) {
	case *sll.Ctr:
		steps := make([]Step, len(t.Args))
		for i, a := range t.Args {
			steps[i] = Step{Expr: a}
		}
		return steps, nil
	case *sll.FCall:
		return d.driveFCall(t)
	case *sll.GCall:
		return d.driveGCall(t)
	case *sll.Let:
		steps := make([]Step, 0, len(t.Bindings)+1)
		steps = append(steps, Step{Expr: t.Body})
		for _, b := range t.Bindings {
			steps = append(steps, Step{Expr: b.Value})
		}
		return steps, nil
	default:
		return nil, fmt.Errorf("drive %s: %w", e, ErrNotDrivable)
	}
}

func (d *Driver) driveFCall(call *sll.FCall) ([]Step, error) {
	rule, ok := d.prog.FRule(call.Name)
	if !ok {
		return nil, fmt.Errorf("drive %s: %w", call, ErrUnknownFunction)
	}
	if len(rule.Params) != len(call.Args) {
		return nil, fmt.Errorf("drive %s: %w: %s takes %d arguments", call, ErrArityMismatch, call.Name, len(rule.Params))
	}
	sub := sll.NewSubstitution()
	for i, p := range rule.Params {
		sub = sub.Bind(p.Name, call.Args[i])
	}
	return []Step{{Expr: sll.ApplySubst(rule.Body, sub)}}, nil
}

func (d *Driver) driveGCall(call *sll.GCall) ([]Step, error) {
	if len(call.Args) == 0 {
		return nil, fmt.Errorf("drive %s: %w: missing scrutinee", call, ErrArityMismatch)
	}
	switch scrutinee := call.Args[0].(type) {
	case *sll.Ctr:
		step, err := d.applyGRule(call, scrutinee)
		if err != nil {
			return nil, err
		}
		return []Step{step}, nil
	case *sll.Var:
		return d.split(call, scrutinee)
	default:
		inner, err := d.drive(scrutinee)
		if err != nil {
			return nil, err
		}
		steps := make([]Step, len(inner))
		for i, s := range inner {
			args := append([]sll.Expr{s.Expr}, call.Args[1:]...)
			steps[i] = Step{Expr: &sll.GCall{Name: call.Name, Args: args}, Contraction: s.Contraction}
		}
		return steps, nil
	}
}

func (d *Driver) applyGRule(call *sll.GCall, ctr *sll.Ctr) (Step, error) {
	rule, ok := d.prog.GRule(call.Name, ctr.Name)
	if !ok {
		if len(d.prog.GRules(call.Name)) == 0 {
			return Step{}, fmt.Errorf("drive %s: %w", call, ErrUnknownFunction)
		}
		return Step{}, fmt.Errorf("drive %s: %w: no rule for %s", call, ErrNonExhaustive, ctr.Name)
	}
	if len(rule.Pattern.Args) != len(ctr.Args) {
		return Step{}, fmt.Errorf("drive %s: %w: pattern %s binds %d arguments", call, ErrArityMismatch, rule.Pattern, len(rule.Pattern.Args))
	}
	if len(rule.Params) != len(call.Args)-1 {
		return Step{}, fmt.Errorf("drive %s: %w: %s takes %d arguments", call, ErrArityMismatch, call.Name, len(rule.Params)+1)
	}
	sub := sll.NewSubstitution()
	for i, v := range rule.Pattern.Args {
		sub = sub.Bind(v.Name, ctr.Args[i])
	}
	for i, v := range rule.Params {
		sub = sub.Bind(v.Name, call.Args[i+1])
	}
	return Step{Expr: sll.ApplySubst(rule.Body, sub)}, nil
}

// split is the case analysis of a g-call whose scrutinee is the variable v.
func (d *Driver) split(call *sll.GCall, v *sll.Var) ([]Step, error) {
	rules := d.prog.GRules(call.Name)
	if len(rules) == 0 {
		return nil, fmt.Errorf("drive %s: %w", call, ErrUnknownFunction)
	}
	steps := make([]Step, 0, len(rules))
	for _, rule := range rules {
		fp := d.names.FreshPattern(rule.Pattern)
		specialised := sll.ApplySubst(call, sll.NewSubstitution().Bind(v.Name, fp.Ctr()))
		next, err := d.drive(specialised)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Expr: next[0].Expr, Contraction: &Contraction{Var: v, Pattern: fp}})
	}
	return steps, nil
}
