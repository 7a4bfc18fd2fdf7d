// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic

import (
	"github.com/go-air/airw/z"
)

// Kind classifies a node.  Only KindAnd nodes are candidates for the
// algebraic rewriter; KindConst and KindInput nodes are leaves at level 0.
type Kind int

const (
	// KindConst is the constant node every C carries at index 1; its
	// positive literal is C.T and its negation C.F.
	KindConst Kind = iota
	// KindInput is a primary input.
	KindInput
	// KindAnd is a two-input AND gate.
	KindAnd
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindInput:
		return "input"
	case KindAnd:
		return "and"
	default:
		return "?"
	}
}

// node is the internal record for one vertex: a,b are its fanins (both
// z.LitNull for a leaf), n chains structurally-identical ANDs in the strash
// bucket, and kind disambiguates the constant from a bare primary input
// (both have a == b == z.LitNull).
type node struct {
	a, b z.Lit
	n    uint32
	kind Kind
}

// C is a combinational And-Inverter Graph: the host graph service.
// Node 0 is reserved; node 1 is the constant.  Nodes are created in
// sequence by NewIn and And, so a node built by a single And call always
// has fanins with a smaller index than itself at the moment it is built.
// That is not the same as the node list as a whole being in topological
// order: SubstituteNode can leave an existing, lower-index consumer
// pointing at a newly created, higher-index node, so array index order is
// not a topological order once a substitution has happened.  Eval, Eval64,
// and the level oracle never assume otherwise -- each walks fanin edges
// directly, memoized against repeat visits, rather than sweeping the node
// array in index order.
type C struct {
	nodes   []node
	strash  []uint32
	fanout  [][]uint32 // per-node list of AND-gate indices using it as a fanin
	outs    []z.Lit    // primary outputs, in the order added
	outName []string

	F z.Lit // the constant-false signal
	T z.Lit // the constant-true signal
}

// NewC creates a new, empty circuit.
func NewC() *C {
	c := &C{}
	initC(c, 128)
	return c
}

// NewCCap creates a new circuit with initial capacity capHint.
func NewCCap(capHint int) *C {
	c := &C{}
	initC(c, capHint)
	return c
}

func initC(c *C, capHint int) {
	if capHint < 2 {
		capHint = 2
	}
	c.nodes = make([]node, 2, capHint)
	c.strash = make([]uint32, capHint)
	c.fanout = make([][]uint32, 2, capHint)
	c.nodes[1].kind = KindConst
	c.F = z.Var(1).Neg()
	c.T = c.F.Not()
}

// Len returns the number of internal nodes used to represent C, including
// the reserved node 0 and the constant at node 1.
func (c *C) Len() int {
	return len(c.nodes)
}

// At returns the i'th node as a positive literal.
func (c *C) At(i int) z.Lit {
	return z.Var(i).Pos()
}

// Kind reports the semantic kind of the node m refers to.
func (c *C) Kind(m z.Lit) Kind {
	return c.nodes[m.Var()].kind
}

// IsAndGate reports whether the node m refers to is an AND gate.
func (c *C) IsAndGate(m z.Lit) bool {
	return c.nodes[m.Var()].kind == KindAnd
}

// NewIn creates a new primary input.
func (c *C) NewIn() z.Lit {
	v := uint32(len(c.nodes))
	n, _ := c.newNode()
	n.kind = KindInput
	return z.Var(v).Pos()
}

// Lit is an alias for NewIn, matching the naming used by callers that treat
// a fresh input as just another signal to build formulas from.
func (c *C) Lit() z.Lit {
	return c.NewIn()
}

// InPos returns the positions of all primary inputs, in creation order.
func (c *C) InPos(dst []int) []int {
	dst = dst[:0]
	for i, n := range c.nodes {
		if n.kind == KindInput {
			dst = append(dst, i)
		}
	}
	return dst
}

// AddOutput marks m as a primary output, returning its output index.
// A node may be marked as an output any number of times, including zero.
func (c *C) AddOutput(m z.Lit) int {
	i := len(c.outs)
	c.outs = append(c.outs, m)
	c.outName = append(c.outName, "")
	return i
}

// Outputs returns the primary output signals, in the order added.
func (c *C) Outputs() []z.Lit {
	return c.outs
}

// Ins returns the two fanins of the AND gate m.  If m is not an AND gate,
// Ins returns z.LitNull, z.LitNull.
func (c *C) Ins(m z.Lit) (z.Lit, z.Lit) {
	n := &c.nodes[m.Var()]
	return n.a, n.b
}

// ForeachGate visits every current AND gate exactly once, in ascending
// node-index order.  Gates created by CreateAnd calls made from within
// visit are not seen until a later call to ForeachGate: the bound on
// iteration is fixed at entry, giving a deterministic order.
func (c *C) ForeachGate(visit func(n z.Lit)) {
	e := len(c.nodes)
	for i := 2; i < e; i++ {
		if c.nodes[i].kind == KindAnd {
			visit(z.Var(i).Pos())
		}
	}
}

// ForeachFanin visits the two fanins of AND gate n as signals, in stored
// order.
func (c *C) ForeachFanin(n z.Lit, visit func(sig z.Lit)) {
	a, b := c.Ins(n)
	visit(a)
	visit(b)
}

// GetNode returns the node sig refers to, as a positive literal.
func (c *C) GetNode(sig z.Lit) z.Lit {
	return sig.Var().Pos()
}

// IsComplemented reports whether sig carries the negated function of its node.
func (c *C) IsComplemented(sig z.Lit) bool {
	return !sig.IsPos()
}

// Eval evaluates the circuit with values vs, where vs[i] holds the value of
// the node with index i.  vs must already hold values for every input and
// is extended in place with the value of every AND gate, each computed
// only once its own fanins are known -- not in index order, since a
// substituted circuit's fanins are not guaranteed to precede their user in
// the node array.
func (c *C) Eval(vs []bool) {
	vs[1] = true // Var(1)'s own value; c.T reads it positively, c.F negated
	done := make([]bool, len(c.nodes))
	for i, n := range c.nodes {
		done[i] = n.kind != KindAnd
	}
	stack := make([]int, 0, 8)
	for i := 2; i < len(c.nodes); i++ {
		if done[i] {
			continue
		}
		stack = stack[:0]
		stack = append(stack, i)
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if done[top] {
				stack = stack[:len(stack)-1]
				continue
			}
			n := &c.nodes[top]
			av, bv := int(n.a.Var()), int(n.b.Var())
			if !done[av] || !done[bv] {
				if !done[av] {
					stack = append(stack, av)
				}
				if !done[bv] {
					stack = append(stack, bv)
				}
				continue
			}
			va, vb := vs[av], vs[bv]
			if !n.a.IsPos() {
				va = !va
			}
			if !n.b.IsPos() {
				vb = !vb
			}
			vs[top] = va && vb
			done[top] = true
			stack = stack[:len(stack)-1]
		}
	}
}

// Eval64 is like Eval but evaluates 64 independent assignments in parallel,
// one per bit of each uint64.
func (c *C) Eval64(vs []uint64) {
	vs[1] = ^uint64(0)
	done := make([]bool, len(c.nodes))
	for i, n := range c.nodes {
		done[i] = n.kind != KindAnd
	}
	stack := make([]int, 0, 8)
	for i := 2; i < len(c.nodes); i++ {
		if done[i] {
			continue
		}
		stack = stack[:0]
		stack = append(stack, i)
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if done[top] {
				stack = stack[:len(stack)-1]
				continue
			}
			n := &c.nodes[top]
			av, bv := int(n.a.Var()), int(n.b.Var())
			if !done[av] || !done[bv] {
				if !done[av] {
					stack = append(stack, av)
				}
				if !done[bv] {
					stack = append(stack, bv)
				}
				continue
			}
			va, vb := vs[av], vs[bv]
			if !n.a.IsPos() {
				va = ^va
			}
			if !n.b.IsPos() {
				vb = ^vb
			}
			vs[top] = va & vb
			done[top] = true
			stack = stack[:len(stack)-1]
		}
	}
}

// And returns a signal equivalent to "a and b", hash-consing against any
// structurally identical AND gate already present.  This is create_and of
// CreateAnd is its rewrite-facing name.
func (c *C) And(a, b z.Lit) z.Lit {
	if a == b {
		return a
	}
	if a == b.Not() {
		return c.F
	}
	if a > b {
		a, b = b, a
	}
	if a == c.F {
		return c.F
	}
	if a == c.T {
		return b
	}
	code := strashCode(a, b)
	capN := uint32(cap(c.nodes))
	i := code % capN
	si := c.strash[i]
	for si != 0 {
		n := &c.nodes[si]
		if n.a == a && n.b == b {
			return z.Var(si).Pos()
		}
		si = n.n
	}
	n, j := c.newNode()
	n.a, n.b = a, b
	n.kind = KindAnd
	k := code % uint32(cap(c.nodes))
	n.n = c.strash[k]
	c.strash[k] = j
	c.addFanout(a.Var(), j)
	c.addFanout(b.Var(), j)
	return z.Var(j).Pos()
}

// CreateAnd implements the create_and capability of the host interface.
func (c *C) CreateAnd(a, b z.Lit) z.Lit {
	return c.And(a, b)
}

// Ands constructs the conjunction of ms.  Ands() (no arguments) is c.T.
func (c *C) Ands(ms ...z.Lit) z.Lit {
	a := c.T
	for _, m := range ms {
		a = c.And(a, m)
	}
	return a
}

// Or constructs the disjunction of a and b.
func (c *C) Or(a, b z.Lit) z.Lit {
	return c.And(a.Not(), b.Not()).Not()
}

// Ors constructs the disjunction of the literals in ms.  Ors() is c.F.
func (c *C) Ors(ms ...z.Lit) z.Lit {
	d := c.F
	for _, m := range ms {
		d = c.Or(d, m)
	}
	return d
}

// Xor constructs a signal equivalent to (a xor b).
func (c *C) Xor(a, b z.Lit) z.Lit {
	return c.Or(c.And(a, b.Not()), c.And(a.Not(), b))
}

// SubstituteNode redirects every fanout edge and every output currently
// pointing at old so that it instead points at new, composing each edge's
// own complement with new's XOR-wise.  old's own definition (its fanins)
// is left untouched: old remains a valid, if now possibly unreferenced,
// node: orphaned nodes may be swept by the host but need not be.
func (c *C) SubstituteNode(old, new z.Lit) {
	ov := old.Var()
	users := c.fanout[ov]
	for _, g := range users {
		n := &c.nodes[g]
		if n.a.Var() == ov {
			n.a = composeEdge(n.a, new)
		}
		if n.b.Var() == ov {
			n.b = composeEdge(n.b, new)
		}
		c.addFanout(new.Var(), g)
	}
	c.fanout[ov] = c.fanout[ov][:0]
	for i, o := range c.outs {
		if o.Var() == ov {
			c.outs[i] = composeEdge(o, new)
		}
	}
}

func composeEdge(edge, new z.Lit) z.Lit {
	if edge.IsPos() {
		return new
	}
	return new.Not()
}

func (c *C) addFanout(v z.Var, user uint32) {
	c.fanout[v] = append(c.fanout[v], user)
}

func (c *C) newNode() (*node, uint32) {
	if len(c.nodes) == cap(c.nodes) {
		c.grow()
	}
	id := len(c.nodes)
	c.nodes = c.nodes[:id+1]
	c.fanout = append(c.fanout, nil)
	return &c.nodes[id], uint32(id)
}

func (c *C) grow() {
	newCap := cap(c.nodes) * 2
	nodes := make([]node, cap(c.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, c.nodes)
	ucap := uint32(newCap)
	for i := range nodes {
		n := &nodes[i]
		if n.kind != KindAnd {
			continue
		}
		code := strashCode(n.a, n.b)
		j := code % ucap
		n.n = strash[j]
		strash[j] = uint32(i)
	}
	c.nodes = nodes
	c.strash = strash
}

func strashCode(a, b z.Lit) uint32 {
	return uint32((a << 13) * b)
}
