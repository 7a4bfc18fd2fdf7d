// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package rewrite_test

import (
	"testing"

	"github.com/go-air/airw/equiv"
	"github.com/go-air/airw/levels"
	"github.com/go-air/airw/logic"
	"github.com/go-air/airw/rewrite"
	"github.com/go-air/airw/z"
)

func newRewriter(c *logic.C) (*rewrite.Rewriter, *levels.Oracle) {
	lv := levels.New(c)
	return rewrite.New(c, lv), lv
}

// captureFunction snapshots c's current function over its own primary
// inputs and outputs, for a later snap.Equal(c) check against the same
// (mutated in place) circuit.
func captureFunction(c *logic.C) *equiv.Snapshot {
	ins := c.InPos(nil)
	outs := append([]z.Lit(nil), c.Outputs()...)
	return equiv.Capture(c, ins, outs)
}

// Scenario 1: f = ((((a.b).c).d).e), left-deep, depth 4 -> depth 3.
func TestAssociativityReducesDepth(t *testing.T) {
	c := logic.NewC()
	ins := make([]z.Lit, 5)
	for i := range ins {
		ins[i] = c.NewIn()
	}
	out := ins[0]
	for i := 1; i < len(ins); i++ {
		out = c.And(out, ins[i])
	}
	c.AddOutput(out)

	rw, lv := newRewriter(c)
	before := lv.Depth()
	if before != 4 {
		t.Fatalf("setup: depth %d want 4", before)
	}
	snap := captureFunction(c)
	n := rw.Run()
	if n == 0 {
		t.Fatalf("expected at least one rewrite")
	}
	if lv.Depth() >= before {
		t.Errorf("depth did not decrease: before %d after %d", before, lv.Depth())
	}
	if !snap.Equal(c) {
		t.Errorf("rewrite changed the circuit's function")
	}
}

// Scenario 4: f = (a.b).c, level(a.b) - level(c) == 1: associativity must decline.
func TestAssociativityDeclinesOnShallowDifference(t *testing.T) {
	c := logic.NewC()
	a, b, cc := c.NewIn(), c.NewIn(), c.NewIn()
	ab := c.And(a, b)
	top := c.And(ab, cc)
	c.AddOutput(top)

	rw, lv := newRewriter(c)
	before := lv.Depth()
	snap := captureFunction(c)
	n := rw.Run()
	if n != 0 {
		t.Errorf("expected no rewrite, got %d", n)
	}
	if lv.Depth() != before {
		t.Errorf("depth changed on a no-op case: %d -> %d", before, lv.Depth())
	}
	if !snap.Equal(c) {
		t.Errorf("rewrite changed the circuit's function")
	}
}

// Scenario 5: f = ¬((a.b).d).c, level((a.b).d) - level(c) == 2: the
// complemented edge blocks associativity, and the distributivity rule does
// not match because only one side of the top AND is complemented.
func TestComplementBlocksAssociativity(t *testing.T) {
	c := logic.NewC()
	a, b, cc, d := c.NewIn(), c.NewIn(), c.NewIn(), c.NewIn()
	abd := c.And(c.And(a, b), d) // level 2
	mid := abd.Not()
	top := c.And(mid, cc)
	c.AddOutput(top)

	rw, lv := newRewriter(c)
	before := lv.Depth()
	snap := captureFunction(c)
	n := rw.Run()
	if n != 0 {
		t.Errorf("expected no rewrite on complemented associativity pattern, got %d", n)
	}
	if lv.Depth() != before {
		t.Errorf("depth changed unexpectedly: %d -> %d", before, lv.Depth())
	}
	if !snap.Equal(c) {
		t.Errorf("rewrite changed the circuit's function")
	}
}

// Scenario 6: a balanced binary AND tree over 8 PIs, depth 3: already
// optimal, no rule fires.
func TestIdempotentOnBalancedTree(t *testing.T) {
	c := logic.NewC()
	ins := make([]z.Lit, 8)
	for i := range ins {
		ins[i] = c.NewIn()
	}
	l1 := []z.Lit{c.And(ins[0], ins[1]), c.And(ins[2], ins[3]), c.And(ins[4], ins[5]), c.And(ins[6], ins[7])}
	l2 := []z.Lit{c.And(l1[0], l1[1]), c.And(l1[2], l1[3])}
	top := c.And(l2[0], l2[1])
	c.AddOutput(top)

	rw, lv := newRewriter(c)
	before := lv.Depth()
	snap := captureFunction(c)
	n := rw.Run()
	if n != 0 {
		t.Errorf("expected no rewrite on a balanced tree, got %d", n)
	}
	if lv.Depth() != before {
		t.Errorf("depth changed on a balanced tree: %d -> %d", before, lv.Depth())
	}
	if !snap.Equal(c) {
		t.Errorf("rewrite changed the circuit's function")
	}
}

// Scenario 2: f = ¬(s.p) . ¬(s.q), level(s) > level(p) == level(q).
func TestTwoLevelDistributivity(t *testing.T) {
	c := logic.NewC()
	x, y := c.NewIn(), c.NewIn()
	s := c.And(x, y) // level(s) = 1
	p, q := c.NewIn(), c.NewIn()

	sp := c.And(s, p)
	sq := c.And(s, q)
	top := c.And(sp.Not(), sq.Not())
	c.AddOutput(top)

	rw, lv := newRewriter(c)
	before := lv.Depth()
	snap := captureFunction(c)
	n := rw.Run()
	if n == 0 {
		t.Fatalf("expected the distributivity rule to fire")
	}
	if lv.Depth() >= before {
		t.Errorf("depth did not decrease: before %d after %d", before, lv.Depth())
	}
	if !snap.Equal(c) {
		t.Errorf("rewrite changed the circuit's function")
	}
}

// Scenario 3: f = ((g.x2) + x3) . x4, level(g) >> level(x2), level(x3), level(x4).
func TestThreeLevelDistributivity(t *testing.T) {
	c := logic.NewC()
	// Build g deep and balanced: g = (a1.a2).(a3.a4) (level 2), so that
	// associativity declines at g.x2 and only the three-level rule applies.
	a1, a2, a3, a4 := c.NewIn(), c.NewIn(), c.NewIn(), c.NewIn()
	g := c.And(c.And(a1, a2), c.And(a3, a4))

	x2, x3, x4 := c.NewIn(), c.NewIn(), c.NewIn()
	gx2 := c.And(g, x2) // level 3
	// midAnd = ¬(g.x2) . ¬x3, so its negation realizes (g.x2) + x3 via NAND-of-NANDs.
	midAnd := c.And(gx2.Not(), x3.Not())
	top := c.And(midAnd.Not(), x4)
	c.AddOutput(top)

	rw, lv := newRewriter(c)
	before := lv.Depth()
	snap := captureFunction(c)
	n := rw.Run()
	if n == 0 {
		t.Fatalf("expected the three-level distributivity rule to fire")
	}
	if lv.Depth() >= before {
		t.Errorf("depth did not decrease: before %d after %d", before, lv.Depth())
	}
	if !snap.Equal(c) {
		t.Errorf("rewrite changed the circuit's function")
	}
}

// P3: a second rewrite pass over an already-fixed-point graph performs no
// further substitutions.
func TestFixedPoint(t *testing.T) {
	c := logic.NewC()
	ins := make([]z.Lit, 5)
	for i := range ins {
		ins[i] = c.NewIn()
	}
	out := ins[0]
	for i := 1; i < len(ins); i++ {
		out = c.And(out, ins[i])
	}
	c.AddOutput(out)

	rw, _ := newRewriter(c)
	rw.Run()

	snap := captureFunction(c)
	rw2, _ := newRewriter(c)
	if n := rw2.Run(); n != 0 {
		t.Errorf("expected fixed point, got %d further rewrites", n)
	}
	if !snap.Equal(c) {
		t.Errorf("second rewrite pass changed the circuit's function")
	}
}
