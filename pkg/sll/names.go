package sll

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// NameSupply issues fresh variable names of the form v_<n>. The counter
// only grows, so a supply never returns the same name twice. The zero
// value is ready to use.
//
// Each process-tree construction should own its supply; two runs sharing
// a supply still get distinct names but are no longer reproducible.
type NameSupply struct {
	counter int64
}

// NewNameSupply creates a supply starting at v_1.
func NewNameSupply() *NameSupply {
	return &NameSupply{}
}

// FreshVar returns a variable whose name was never issued before by ns.
func (ns *NameSupply) FreshVar() *Var {
	id := atomic.AddInt64(&ns.counter, 1)
	return &Var{Name: fmt.Sprintf("v_%d", id)}
}

// FreshPattern returns p with every argument replaced by a fresh variable.
func (ns *NameSupply) FreshPattern(p *Pattern) *Pattern {
	args := make([]*Var, len(p.Args))
	for i := range p.Args {
		args[i] = ns.FreshVar()
	}
	return &Pattern{Name: p.Name, Args: args}
}

// Issued returns the index of the last name handed out or reserved by
// Avoid.
func (ns *NameSupply) Issued() int64 {
	return atomic.LoadInt64(&ns.counter)
}

// Avoid advances ns past every variable of e named v_<n>, so that names
// issued afterwards cannot capture a variable the user wrote.
func (ns *NameSupply) Avoid(e Expr) {
	for _, name := range VarNames(e) {
		n, ok := freshIndex(name)
		if !ok {
			continue
		}
		for {
			cur := atomic.LoadInt64(&ns.counter)
			if n <= cur || atomic.CompareAndSwapInt64(&ns.counter, cur, n) {
				break
			}
		}
	}
}

// AvoidProgram calls Avoid on every parameter, pattern and body of prog.
func (ns *NameSupply) AvoidProgram(prog *Program) {
	for _, r := range prog.Rules {
		switch rule := r.(type) {
		case *FRule:
			ns.Avoid(&FCall{Name: rule.Name, Args: varsToExprs(rule.Params)})
			ns.Avoid(rule.Body)
		case *GRule:
			ns.Avoid(rule.Pattern)
			ns.Avoid(&GCall{Name: rule.Name, Args: varsToExprs(rule.Params)})
			ns.Avoid(rule.Body)
		}
	}
}

// freshIndex returns n for a name of the form v_<n>.
func freshIndex(name string) (int64, bool) {
	digits, ok := strings.CutPrefix(name, "v_")
	if !ok || digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
