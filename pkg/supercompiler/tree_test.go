package supercompiler

import (
	"reflect"
	"testing"

	"github.com/gitrdm/spsc/pkg/sll"
)

func TestTreeStructure(t *testing.T) {
	tr := NewTree(mustExpr(t, "fA(x)"))
	root := tr.Root()
	if tr.Parent(root) != NoNode {
		t.Fatal("root should have no parent")
	}

	tr.AddChildren(root, []Step{
		{Expr: mustExpr(t, "Cons(y, z)")},
		{Expr: mustExpr(t, "gB(y)")},
	})
	kids := tr.Children(root)
	if len(kids) != 2 {
		t.Fatalf("got %d children", len(kids))
	}
	tr.AddChildren(kids[0], []Step{{Expr: mustExpr(t, "y")}, {Expr: mustExpr(t, "z")}})
	grand := tr.Children(kids[0])

	t.Run("leaves in pre-order", func(t *testing.T) {
		want := []NodeID{grand[0], grand[1], kids[1]}
		if got := tr.Leaves(); !reflect.DeepEqual(got, want) {
			t.Errorf("Leaves() = %v, want %v", got, want)
		}
	})

	t.Run("ancestors nearest first", func(t *testing.T) {
		want := []NodeID{kids[0], root}
		if got := tr.Ancestors(grand[1]); !reflect.DeepEqual(got, want) {
			t.Errorf("Ancestors() = %v, want %v", got, want)
		}
		if len(tr.Ancestors(root)) != 0 {
			t.Error("root has no ancestors")
		}
	})

	t.Run("rendering", func(t *testing.T) {
		want := "|__fA(x)\n" +
			"     |__Cons(y, z)\n" +
			"         |__y\n" +
			"         |__z\n" +
			"     |__gB(y)"
		if got := tr.String(); got != want {
			t.Errorf("got\n%s\nwant\n%s", got, want)
		}
		if tr.Len() != 5 {
			t.Errorf("Len() = %d, want 5", tr.Len())
		}
	})

	t.Run("children slice is a copy", func(t *testing.T) {
		c := tr.Children(root)
		c[0] = NoNode
		if tr.Children(root)[0] == NoNode {
			t.Error("Children exposed internal storage")
		}
	})
}

func TestTreeReplace(t *testing.T) {
	tr := NewTree(mustExpr(t, "gA(x)"))
	root := tr.Root()
	split := &Contraction{Var: sll.NewVar("x"), Pattern: sll.NewPattern("S", sll.NewVar("v_1"))}
	tr.AddChildren(root, []Step{
		{Expr: mustExpr(t, "Z()"), Contraction: &Contraction{Var: sll.NewVar("x"), Pattern: sll.NewPattern("Z")}},
		{Expr: mustExpr(t, "gA(S(v_1))"), Contraction: split},
	})
	kids := tr.Children(root)

	let := sll.NewLet(mustExpr(t, "gA(x)"), sll.Binding{Name: "x", Value: mustExpr(t, "S(v_1)")})
	repl := tr.Replace(kids[1], let)

	if repl == kids[1] {
		t.Fatal("replacement should be a new node")
	}
	if got := tr.Children(root); got[0] != kids[0] || got[1] != repl {
		t.Errorf("children after replace = %v", got)
	}
	if tr.Parent(repl) != root {
		t.Error("replacement lost its parent")
	}
	if tr.Contraction(repl) != split {
		t.Error("replacement should keep the contraction")
	}
	if !sll.Equals(tr.Expr(repl), let) {
		t.Errorf("replacement holds %s", tr.Expr(repl))
	}
	if tr.Expr(kids[0]).String() != "Z()" || tr.Parent(kids[0]) != root {
		t.Error("sibling changed")
	}

	t.Run("root", func(t *testing.T) {
		newRoot := tr.Replace(root, mustExpr(t, "Z()"))
		if tr.Root() != newRoot || tr.Parent(newRoot) != NoNode {
			t.Error("root replacement should install a parentless root")
		}
		if tr.Len() != 1 {
			t.Errorf("new root should have no children, Len() = %d", tr.Len())
		}
	})
}

func TestIsProcessed(t *testing.T) {
	tr := NewTree(mustExpr(t, "fA(x, y)"))
	root := tr.Root()
	tr.AddChildren(root, []Step{
		{Expr: mustExpr(t, "x")},
		{Expr: mustExpr(t, "Nil()")},
		{Expr: mustExpr(t, "Cons(x, y)")},
		{Expr: mustExpr(t, "fA(b, a)")},
		{Expr: mustExpr(t, "fA(x, x)")},
		{Expr: mustExpr(t, "gA(x, y)")},
		{Expr: sll.NewLet(mustExpr(t, "x"))},
	})
	want := []bool{true, true, false, true, false, false, false}
	for i, c := range tr.Children(root) {
		if got := tr.IsProcessed(c); got != want[i] {
			t.Errorf("IsProcessed(%s) = %v, want %v", tr.Expr(c), got, want[i])
		}
	}
	if tr.IsProcessed(root) {
		t.Error("a call without ancestors is not processed")
	}
	leaf, ok := tr.UnprocessedLeaf()
	if !ok || tr.Expr(leaf).String() != "Cons(x, y)" {
		t.Errorf("UnprocessedLeaf() = %v, %v", leaf, ok)
	}
}
