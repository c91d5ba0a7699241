package supercompiler

import (
	"strings"

	"github.com/gitrdm/spsc/pkg/sll"
)

// NodeID indexes a node of a Tree.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

type node struct {
	expr        sll.Expr
	contraction *Contraction
	children    []NodeID
	parent      NodeID
}

// Tree is a process tree. Nodes are stored in a table and refer to their
// children and parent by index, so the upward links never form reference
// cycles. Nodes are only ever added: replacing a node installs a new entry
// and detaches the old one, leaving the IDs of all other nodes intact.
type Tree struct {
	nodes []node
	root  NodeID
}

// NewTree creates a tree holding only e.
func NewTree(e sll.Expr) *Tree {
	t := &Tree{}
	t.root = t.newNode(e, nil, NoNode)
	return t
}

func (t *Tree) newNode(e sll.Expr, c *Contraction, parent NodeID) NodeID {
	t.nodes = append(t.nodes, node{expr: e, contraction: c, parent: parent})
	return NodeID(len(t.nodes) - 1)
}

// Root returns the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Expr returns the expression held by n.
func (t *Tree) Expr(n NodeID) sll.Expr {
	return t.nodes[n].expr
}

// Contraction returns the contraction of n, or nil.
func (t *Tree) Contraction(n NodeID) *Contraction {
	return t.nodes[n].contraction
}

// Children returns the children of n in order.
func (t *Tree) Children(n NodeID) []NodeID {
	return append([]NodeID(nil), t.nodes[n].children...)
}

// Parent returns the parent of n, or NoNode for the root.
func (t *Tree) Parent(n NodeID) NodeID {
	return t.nodes[n].parent
}

// Ancestors returns the ancestors of n, nearest first.
func (t *Tree) Ancestors(n NodeID) []NodeID {
	var out []NodeID
	for p := t.nodes[n].parent; p != NoNode; p = t.nodes[p].parent {
		out = append(out, p)
	}
	return out
}

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(NodeID, int) { count++ })
	return count
}

// Walk calls fn for every node reachable from the root in pre-order,
// passing the depth of the node.
func (t *Tree) Walk(fn func(n NodeID, depth int)) {
	var visit func(n NodeID, depth int)
	visit = func(n NodeID, depth int) {
		fn(n, depth)
		for _, c := range t.nodes[n].children {
			visit(c, depth+1)
		}
	}
	visit(t.root, 0)
}

// Leaves returns the nodes without children, in pre-order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	t.Walk(func(n NodeID, _ int) {
		if len(t.nodes[n].children) == 0 {
			out = append(out, n)
		}
	})
	return out
}

// IsProcessed reports whether n needs no further work: variables and
// nullary constructors are in normal form, and a call is processed once
// an ancestor of the same kind holds an equivalent call.
func (t *Tree) IsProcessed(n NodeID) bool {
	e := t.nodes[n].expr
	switch x := e.(type) {
	case *sll.Var:
		return true
	case *sll.Ctr:
		return len(x.Args) == 0
	case *sll.FCall, *sll.GCall:
		for _, a := range t.Ancestors(n) {
			ae := t.nodes[a].expr
			if ae.Kind() == e.Kind() && sll.Equiv(e, ae) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// UnprocessedLeaf returns the first unprocessed leaf in pre-order.
func (t *Tree) UnprocessedLeaf() (NodeID, bool) {
	for _, l := range t.Leaves() {
		if !t.IsProcessed(l) {
			return l, true
		}
	}
	return NoNode, false
}

// AddChildren appends one child per step to n.
func (t *Tree) AddChildren(n NodeID, steps []Step) {
	for _, s := range steps {
		c := t.newNode(s.Expr, s.Contraction, n)
		t.nodes[n].children = append(t.nodes[n].children, c)
	}
}

// Replace puts a new node holding e in the place of n and returns it. The
// new node keeps the parent and contraction of n but has no children.
// Replacing the root installs a new root.
func (t *Tree) Replace(n NodeID, e sll.Expr) NodeID {
	if n == t.root {
		t.root = t.newNode(e, nil, NoNode)
		return t.root
	}
	old := t.nodes[n]
	repl := t.newNode(e, old.contraction, old.parent)
	siblings := t.nodes[old.parent].children
	for i, c := range siblings {
		if c == n {
			siblings[i] = repl
		}
	}
	return repl
}

// String renders the tree one node per line as |__expr, children indented
// by four spaces.
func (t *Tree) String() string {
	var lines []string
	t.Walk(func(n NodeID, depth int) {
		lines = append(lines, strings.Repeat("    ", depth)+"|__"+t.nodes[n].expr.String())
	})
	return strings.Join(lines, "\n ")
}
