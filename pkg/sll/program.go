package sll

import (
	"errors"
	"fmt"
	"strings"
)

// Rule is either an *FRule or a *GRule.
type Rule interface {
	// RuleName returns the name of the function the rule defines.
	RuleName() string
	String() string
}

// FRule defines an f-function: Name(Params...) = Body.
type FRule struct {
	Name   string
	Params []*Var
	Body   Expr
}

func (r *FRule) RuleName() string { return r.Name }

func (r *FRule) String() string {
	return renderCall(r.Name, varsToExprs(r.Params)) + " = " + r.Body.String() + ";"
}

// GRule defines one alternative of a g-function:
// Name(Pattern, Params...) = Body.
type GRule struct {
	Name    string
	Pattern *Pattern
	Params  []*Var
	Body    Expr
}

func (r *GRule) RuleName() string { return r.Name }

func (r *GRule) String() string {
	args := append([]Expr{r.Pattern}, varsToExprs(r.Params)...)
	return renderCall(r.Name, args) + " = " + r.Body.String() + ";"
}

func gKey(name, ctr string) string {
	return name + "_" + ctr
}

// Program is a list of rules together with lookup indexes. It is built
// once by NewProgram and read-only afterwards.
//
// When two f-rules share a name, or two g-rules share a name and pattern
// constructor, the later one is used for lookups. GRules still lists every
// alternative in source order.
type Program struct {
	Rules []Rule

	f  map[string]*FRule
	g  map[string]*GRule
	gs map[string][]*GRule
}

// NewProgram indexes rules.
func NewProgram(rules []Rule) *Program {
	p := &Program{
		Rules: rules,
		f:     make(map[string]*FRule),
		g:     make(map[string]*GRule),
		gs:    make(map[string][]*GRule),
	}
	for _, r := range rules {
		switch rule := r.(type) {
		case *FRule:
			p.f[rule.Name] = rule
		case *GRule:
			p.g[gKey(rule.Name, rule.Pattern.Name)] = rule
			p.gs[rule.Name] = append(p.gs[rule.Name], rule)
		}
	}
	return p
}

// FRule returns the rule defining the f-function name.
func (p *Program) FRule(name string) (*FRule, bool) {
	r, ok := p.f[name]
	return r, ok
}

// GRule returns the alternative of g-function name for constructor ctr.
func (p *Program) GRule(name, ctr string) (*GRule, bool) {
	r, ok := p.g[gKey(name, ctr)]
	return r, ok
}

// GRules returns every alternative of g-function name in source order.
func (p *Program) GRules(name string) []*GRule {
	return p.gs[name]
}

// String renders the program one rule per line.
func (p *Program) String() string {
	lines := make([]string, len(p.Rules))
	for i, r := range p.Rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// Validate reports duplicate definitions and calls that name an undefined
// function or pass the wrong number of arguments. The program stays usable
// either way; driving reports the same problems when it reaches them.
func (p *Program) Validate() error {
	var errs []error
	seenF := make(map[string]bool)
	seenG := make(map[string]bool)
	for _, r := range p.Rules {
		switch rule := r.(type) {
		case *FRule:
			if seenF[rule.Name] {
				errs = append(errs, fmt.Errorf("%s: %w", rule.Name, ErrDuplicateRule))
			}
			seenF[rule.Name] = true
			errs = p.checkCalls(rule.Body, rule.String(), errs)
		case *GRule:
			key := gKey(rule.Name, rule.Pattern.Name)
			if seenG[key] {
				errs = append(errs, fmt.Errorf("%s(%s, ...): %w", rule.Name, rule.Pattern.Name, ErrDuplicateRule))
			}
			seenG[key] = true
			errs = p.checkCalls(rule.Body, rule.String(), errs)
		}
	}
	return errors.Join(errs...)
}

func (p *Program) checkCalls(e Expr, site string, errs []error) []error {
	switch t := e.(type) {
	case *FCall:
		if r, ok := p.f[t.Name]; !ok {
			errs = append(errs, fmt.Errorf("%s in %s: %w", t, site, ErrUnknownFunction))
		} else if len(r.Params) != len(t.Args) {
			errs = append(errs, fmt.Errorf("%s in %s: %w: want %d arguments", t, site, ErrArityMismatch, len(r.Params)))
		}
	case *GCall:
		rules := p.gs[t.Name]
		if len(rules) == 0 {
			errs = append(errs, fmt.Errorf("%s in %s: %w", t, site, ErrUnknownFunction))
			break
		}
		for _, r := range rules {
			if len(t.Args) != len(r.Params)+1 {
				errs = append(errs, fmt.Errorf("%s in %s: %w: want %d arguments", t, site, ErrArityMismatch, len(r.Params)+1))
				break
			}
		}
	case *Let:
		for _, b := range t.Bindings {
			errs = p.checkCalls(b.Value, site, errs)
		}
		return p.checkCalls(t.Body, site, errs)
	}
	for _, a := range Args(e) {
		errs = p.checkCalls(a, site, errs)
	}
	return errs
}
