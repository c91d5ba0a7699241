// Package sll provides the abstract syntax, term algebra and parser of SLL,
// a small first-order functional language with two kinds of functions:
//   - f-functions, defined by a single rule over variables
//   - g-functions, defined by pattern matching on their first argument
//
// Expressions are immutable values. Every operation of the algebra returns
// a new expression instead of modifying its input, so expressions can be
// shared freely between process-tree nodes.
package sll

import "strings"

// Kind identifies the variant of an expression.
type Kind int

const (
	KindVar Kind = iota
	KindCtr
	KindPattern
	KindFCall
	KindGCall
	KindLet
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindVar:
		return "Variable"
	case KindCtr:
		return "Constructor"
	case KindPattern:
		return "Pattern"
	case KindFCall:
		return "FCall"
	case KindGCall:
		return "GCall"
	case KindLet:
		return "Let"
	default:
		return "Unknown"
	}
}

// Expr is an SLL expression. The set of implementations is closed:
// *Var, *Ctr, *Pattern, *FCall, *GCall and *Let.
type Expr interface {
	// Kind reports the variant of the expression.
	Kind() Kind

	// String renders the expression in SLL surface syntax.
	String() string

	isExpr()
}

// Var is a variable occurrence.
type Var struct {
	Name string
}

// NewVar creates a variable.
func NewVar(name string) *Var {
	return &Var{Name: name}
}

func (v *Var) Kind() Kind     { return KindVar }
func (v *Var) String() string { return v.Name }
func (*Var) isExpr()          {}

// Ctr is a constructor application, i.e. a piece of data.
type Ctr struct {
	Name string
	Args []Expr
}

// NewCtr creates a constructor application.
func NewCtr(name string, args ...Expr) *Ctr {
	return &Ctr{Name: name, Args: args}
}

func (c *Ctr) Kind() Kind     { return KindCtr }
func (c *Ctr) String() string { return renderCall(c.Name, c.Args) }
func (*Ctr) isExpr()          {}

// Pattern is the head of a g-rule: a constructor name applied to variables.
type Pattern struct {
	Name string
	Args []*Var
}

// NewPattern creates a pattern.
func NewPattern(name string, args ...*Var) *Pattern {
	return &Pattern{Name: name, Args: args}
}

func (p *Pattern) Kind() Kind     { return KindPattern }
func (p *Pattern) String() string { return renderCall(p.Name, varsToExprs(p.Args)) }
func (*Pattern) isExpr()          {}

// Ctr returns the constructor with the same name and the pattern
// variables as arguments.
func (p *Pattern) Ctr() *Ctr {
	return &Ctr{Name: p.Name, Args: varsToExprs(p.Args)}
}

// FCall is a call of an f-function.
type FCall struct {
	Name string
	Args []Expr
}

// NewFCall creates an f-function call.
func NewFCall(name string, args ...Expr) *FCall {
	return &FCall{Name: name, Args: args}
}

func (c *FCall) Kind() Kind     { return KindFCall }
func (c *FCall) String() string { return renderCall(c.Name, c.Args) }
func (*FCall) isExpr()          {}

// GCall is a call of a g-function. Args[0] is the scrutinee.
type GCall struct {
	Name string
	Args []Expr
}

// NewGCall creates a g-function call.
func NewGCall(name string, args ...Expr) *GCall {
	return &GCall{Name: name, Args: args}
}

func (c *GCall) Kind() Kind     { return KindGCall }
func (c *GCall) String() string { return renderCall(c.Name, c.Args) }
func (*GCall) isExpr()          {}

// Binding pairs a variable name with the expression bound to it.
type Binding struct {
	Name  string
	Value Expr
}

// String renders the binding as name=value.
func (b Binding) String() string {
	return b.Name + "=" + b.Value.String()
}

// Let binds names to expressions in Body. It is the only variant that has
// no name and argument list.
type Let struct {
	Body     Expr
	Bindings []Binding
}

// NewLet creates a let expression.
func NewLet(body Expr, bindings ...Binding) *Let {
	return &Let{Body: body, Bindings: bindings}
}

func (l *Let) Kind() Kind { return KindLet }

func (l *Let) String() string {
	parts := make([]string, len(l.Bindings))
	for i, b := range l.Bindings {
		parts[i] = b.String()
	}
	return "let " + strings.Join(parts, ", ") + " in " + l.Body.String()
}

func (*Let) isExpr() {}

// Name returns the name carried by e and false for a Let.
func Name(e Expr) (string, bool) {
	switch t := e.(type) {
	case *Var:
		return t.Name, true
	case *Ctr:
		return t.Name, true
	case *Pattern:
		return t.Name, true
	case *FCall:
		return t.Name, true
	case *GCall:
		return t.Name, true
	default:
		return "", false
	}
}

// Args returns the argument list of e. Variables have no arguments and a
// Let has none in this sense either.
func Args(e Expr) []Expr {
	switch t := e.(type) {
	case *Ctr:
		return t.Args
	case *Pattern:
		return varsToExprs(t.Args)
	case *FCall:
		return t.Args
	case *GCall:
		return t.Args
	default:
		return nil
	}
}

func renderCall(name string, args []Expr) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func varsToExprs(vs []*Var) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// VarNames returns the names of the variables occurring in e, each once,
// in order of first occurrence. Names bound by a let are included.
func VarNames(e Expr) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch t := e.(type) {
		case *Var:
			if !seen[t.Name] {
				seen[t.Name] = true
				out = append(out, t.Name)
			}
		case *Let:
			for _, b := range t.Bindings {
				walk(&Var{Name: b.Name})
				walk(b.Value)
			}
			walk(t.Body)
		default:
			for _, a := range Args(e) {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}
