package sll

import "strings"

// Substitution maps variable names to expressions. Bindings keep the order
// in which they were added, which makes the rendering of fold lets and
// therefore whole process trees deterministic.
//
// Exported operations never modify the receiver. A nil *Substitution is a
// valid empty substitution.
type Substitution struct {
	names    []string
	bindings map[string]Expr
}

// NewSubstitution creates an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{bindings: make(map[string]Expr)}
}

// SubstitutionOf builds a substitution from bindings. A later binding of
// the same name replaces the earlier value.
func SubstitutionOf(bindings ...Binding) *Substitution {
	s := NewSubstitution()
	for _, b := range bindings {
		s.set(b.Name, b.Value)
	}
	return s
}

// Lookup returns the expression bound to name.
func (s *Substitution) Lookup(name string) (Expr, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.bindings[name]
	return e, ok
}

// Bind returns a new substitution with name bound to e.
func (s *Substitution) Bind(name string, e Expr) *Substitution {
	out := s.clone()
	out.set(name, e)
	return out
}

// Len returns the number of bindings.
func (s *Substitution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the bound names in insertion order.
func (s *Substitution) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Bindings returns the bindings in insertion order.
func (s *Substitution) Bindings() []Binding {
	if s == nil {
		return nil
	}
	out := make([]Binding, len(s.names))
	for i, n := range s.names {
		out[i] = Binding{Name: n, Value: s.bindings[n]}
	}
	return out
}

// String renders the substitution as {x=e1, y=e2}.
func (s *Substitution) String() string {
	bs := s.Bindings()
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *Substitution) clone() *Substitution {
	out := NewSubstitution()
	if s == nil {
		return out
	}
	out.names = append(out.names, s.names...)
	for k, v := range s.bindings {
		out.bindings[k] = v
	}
	return out
}

// set mutates s and is only used on substitutions under construction.
func (s *Substitution) set(name string, e Expr) {
	if _, ok := s.bindings[name]; !ok {
		s.names = append(s.names, name)
	}
	s.bindings[name] = e
}

// ShellEquals reports whether e1 and e2 are of the same kind and carry the
// same name. Arguments are ignored. Two lets always have equal shells.
func ShellEquals(e1, e2 Expr) bool {
	if e1.Kind() != e2.Kind() {
		return false
	}
	n1, _ := Name(e1)
	n2, _ := Name(e2)
	return n1 == n2
}

// Equals is structural equality without renaming.
func Equals(e1, e2 Expr) bool {
	if !ShellEquals(e1, e2) {
		return false
	}
	if l1, ok := e1.(*Let); ok {
		l2 := e2.(*Let)
		if len(l1.Bindings) != len(l2.Bindings) {
			return false
		}
		for i := range l1.Bindings {
			if l1.Bindings[i].Name != l2.Bindings[i].Name ||
				!Equals(l1.Bindings[i].Value, l2.Bindings[i].Value) {
				return false
			}
		}
		return Equals(l1.Body, l2.Body)
	}
	return argsEqual(Args(e1), Args(e2))
}

func argsEqual(a1, a2 []Expr) bool {
	if len(a1) != len(a2) {
		return false
	}
	for i := range a1 {
		if !Equals(a1[i], a2[i]) {
			return false
		}
	}
	return true
}

// ApplySubst replaces every variable of e bound in s by its value. Names
// bound by a let are not substituted inside its body. Pattern arguments
// are only renamed: a pattern variable bound to anything but a variable is
// left as it is.
func ApplySubst(e Expr, s *Substitution) Expr {
	switch t := e.(type) {
	case *Var:
		if v, ok := s.Lookup(t.Name); ok {
			return v
		}
		return t
	case *Ctr:
		return &Ctr{Name: t.Name, Args: substArgs(t.Args, s)}
	case *FCall:
		return &FCall{Name: t.Name, Args: substArgs(t.Args, s)}
	case *GCall:
		return &GCall{Name: t.Name, Args: substArgs(t.Args, s)}
	case *Pattern:
		args := make([]*Var, len(t.Args))
		for i, a := range t.Args {
			args[i] = a
			if v, ok := s.Lookup(a.Name); ok {
				if nv, isVar := v.(*Var); isVar {
					args[i] = nv
				}
			}
		}
		return &Pattern{Name: t.Name, Args: args}
	case *Let:
		bindings := make([]Binding, len(t.Bindings))
		inner := s
		for i, b := range t.Bindings {
			bindings[i] = Binding{Name: b.Name, Value: ApplySubst(b.Value, s)}
			if _, ok := inner.Lookup(b.Name); ok {
				inner = inner.without(b.Name)
			}
		}
		return &Let{Body: ApplySubst(t.Body, inner), Bindings: bindings}
	default:
		return e
	}
}

func substArgs(args []Expr, s *Substitution) []Expr {
	out := make([]Expr, len(args))
	for i, a := range args {
		out[i] = ApplySubst(a, s)
	}
	return out
}

func (s *Substitution) without(name string) *Substitution {
	out := NewSubstitution()
	for _, b := range s.Bindings() {
		if b.Name != name {
			out.set(b.Name, b.Value)
		}
	}
	return out
}

// MatchAgainst matches the pattern expression e1 against e2 in one
// direction: only variables of e1 are bound. On success the returned
// substitution s satisfies Equals(ApplySubst(e1, s), e2).
func MatchAgainst(e1, e2 Expr) (*Substitution, bool) {
	s := NewSubstitution()
	if !matchWalk(e1, e2, s) {
		return nil, false
	}
	return s, true
}

func matchWalk(e1, e2 Expr, s *Substitution) bool {
	if v, ok := e1.(*Var); ok {
		if bound, seen := s.Lookup(v.Name); seen {
			return Equals(bound, e2)
		}
		s.set(v.Name, e2)
		return true
	}
	if e2.Kind() == KindVar {
		return false
	}
	if !ShellEquals(e1, e2) {
		return false
	}
	if l1, ok := e1.(*Let); ok {
		l2 := e2.(*Let)
		if len(l1.Bindings) != len(l2.Bindings) {
			return false
		}
		for i := range l1.Bindings {
			if l1.Bindings[i].Name != l2.Bindings[i].Name ||
				!matchWalk(l1.Bindings[i].Value, l2.Bindings[i].Value, s) {
				return false
			}
		}
		return matchWalk(l1.Body, l2.Body, s)
	}
	a1, a2 := Args(e1), Args(e2)
	if len(a1) != len(a2) {
		return false
	}
	for i := range a1 {
		if !matchWalk(a1[i], a2[i], s) {
			return false
		}
	}
	return true
}

// InstanceOf reports whether e2 is an instance of e1.
func InstanceOf(e1, e2 Expr) bool {
	_, ok := MatchAgainst(e1, e2)
	return ok
}

// Equiv reports whether e1 and e2 are instances of each other, i.e. equal
// up to a consistent renaming of variables.
func Equiv(e1, e2 Expr) bool {
	return InstanceOf(e1, e2) && InstanceOf(e2, e1)
}

// SubstEquals reports whether two substitutions bind the same names to
// equal expressions. Binding order is ignored.
func SubstEquals(s1, s2 *Substitution) bool {
	if s1 == nil || s2 == nil {
		return s1 == s2
	}
	if s1.Len() != s2.Len() {
		return false
	}
	for _, b := range s1.Bindings() {
		v, ok := s2.Lookup(b.Name)
		if !ok || !Equals(b.Value, v) {
			return false
		}
	}
	return true
}
