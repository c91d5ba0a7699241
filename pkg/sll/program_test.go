package sll

import (
	"errors"
	"testing"
)

func TestNewProgram(t *testing.T) {
	prog := MustParseProgram(`
		gAppend(Nil(), vs) = vs;
		gAppend(Cons(u, us), vs) = Cons(u, gAppend(us, vs));
		fId(x) = x;
	`)

	t.Run("gs keeps source order", func(t *testing.T) {
		rules := prog.GRules("gAppend")
		if len(rules) != 2 {
			t.Fatalf("got %d alternatives", len(rules))
		}
		if rules[0].Pattern.Name != "Nil" || rules[1].Pattern.Name != "Cons" {
			t.Errorf("order %s, %s", rules[0].Pattern, rules[1].Pattern)
		}
	})

	t.Run("lookups", func(t *testing.T) {
		if _, ok := prog.FRule("fId"); !ok {
			t.Error("fId missing")
		}
		if _, ok := prog.FRule("fMissing"); ok {
			t.Error("unexpected fMissing")
		}
		if _, ok := prog.GRule("gAppend", "Cons"); !ok {
			t.Error("gAppend_Cons missing")
		}
		if _, ok := prog.GRule("gAppend", "Z"); ok {
			t.Error("unexpected gAppend_Z")
		}
		if len(prog.GRules("gMissing")) != 0 {
			t.Error("unknown g-function should have no alternatives")
		}
	})

	t.Run("valid program", func(t *testing.T) {
		if err := prog.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})
}

func TestDuplicateRules(t *testing.T) {
	prog := MustParseProgram(`
		fA(x) = x;
		fA(x) = Z();
		gB(Z()) = Z();
		gB(Z()) = S(Z());
	`)

	f, _ := prog.FRule("fA")
	if f.Body.String() != "Z()" {
		t.Errorf("last f-rule should win, got %s", f)
	}
	g, _ := prog.GRule("gB", "Z")
	if g.Body.String() != "S(Z())" {
		t.Errorf("last g-rule should win, got %s", g)
	}
	if n := len(prog.GRules("gB")); n != 2 {
		t.Errorf("gs should keep both alternatives, got %d", n)
	}
	if err := prog.Validate(); !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("Validate should report duplicates, got %v", err)
	}
}

func TestValidateCalls(t *testing.T) {
	t.Run("unknown function", func(t *testing.T) {
		prog := MustParseProgram("fA(x) = fB(x);")
		if err := prog.Validate(); !errors.Is(err, ErrUnknownFunction) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("unknown g-function inside constructor", func(t *testing.T) {
		prog := MustParseProgram("fA(x) = S(gB(x));")
		if err := prog.Validate(); !errors.Is(err, ErrUnknownFunction) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("f arity", func(t *testing.T) {
		prog := MustParseProgram("fA(x, y) = x; fB(x) = fA(x);")
		if err := prog.Validate(); !errors.Is(err, ErrArityMismatch) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("g arity", func(t *testing.T) {
		prog := MustParseProgram("gA(Z(), y) = y; fB(x) = gA(x);")
		if err := prog.Validate(); !errors.Is(err, ErrArityMismatch) {
			t.Errorf("got %v", err)
		}
	})
}
