// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic_test

import (
	"math/rand"
	"testing"

	"github.com/go-air/airw/logic"
	"github.com/go-air/airw/z"
)

func TestCStrash(t *testing.T) {
	c := logic.NewC()
	N := 1020
	ins := make([]z.Lit, 0, N)
	for i := 0; i < N; i++ {
		ins = append(ins, c.NewIn())
	}
	gs := make([]z.Lit, N/2)
	for i := 0; i < N/2; i++ {
		j := len(ins) - 1 - i
		gs[i] = c.And(ins[i], ins[j])
	}
	for i := 0; i < N/2; i++ {
		j := len(ins) - 1 - i
		g := c.And(ins[i], ins[j])
		if g != gs[i] {
			t.Errorf("invalid strash at %d", i)
		}
	}
}

type op struct {
	a, b, g z.Lit
}

func TestCSimplify(t *testing.T) {
	c := logic.NewC()
	a := c.NewIn()
	b := c.NewIn()
	ops := []op{
		{a: c.T, b: c.NewIn()},
		{a: c.F, b: c.NewIn()},
		{a: a, b: a},
		{a: a, b: a.Not()},
		{a: a, b: b},
		{a: b, b: a},
	}
	for i := range ops {
		ops[i].g = c.And(ops[i].a, ops[i].b)
	}
	if ops[0].g != ops[0].b {
		t.Errorf("T simp")
	}
	if ops[1].g != c.F {
		t.Errorf("F simp")
	}
	if ops[2].g != ops[2].a {
		t.Errorf("= simp")
	}
	if ops[3].g != c.F {
		t.Errorf("complement simp")
	}
	if ops[4].g != ops[5].g {
		t.Errorf("commutativity simp")
	}
}

func TestEval(t *testing.T) {
	c := logic.NewC()
	a, b := c.NewIn(), c.NewIn()
	g := c.And(a, b)
	vs := make([]bool, c.Len())
	vs[a.Var()], vs[b.Var()] = true, true
	c.Eval(vs)
	if !vs[g.Var()] {
		t.Errorf("bad and eval")
	}
}

func TestEval64(t *testing.T) {
	c := logic.NewC()
	a, b := c.NewIn(), c.NewIn()
	g := c.And(a, b)
	rnd := rand.New(rand.NewSource(1))
	vs := make([]uint64, c.Len())
	vs[a.Var()] = uint64(rnd.Int63())
	vs[b.Var()] = uint64(rnd.Int63())
	c.Eval64(vs)
	want := vs[a.Var()] & vs[b.Var()]
	if vs[g.Var()] != want {
		t.Errorf("bad and eval64: got %x want %x", vs[g.Var()], want)
	}
}

func TestSubstituteNode(t *testing.T) {
	c := logic.NewC()
	a, b, cc := c.NewIn(), c.NewIn(), c.NewIn()
	g1 := c.And(a, b)
	top := c.And(g1, cc)
	c.AddOutput(top)

	repl := c.And(b, a) // strash hit: same node as g1
	if repl != g1 {
		t.Fatalf("expected strash hit")
	}
	newSig := c.NewIn()
	c.SubstituteNode(g1, newSig.Not())

	na, nb := c.Ins(top)
	if na != newSig.Not() && nb != newSig.Not() {
		t.Errorf("substitution did not redirect fanin: %s, %s", na, nb)
	}
	outs := c.Outputs()
	if outs[0] != top {
		t.Errorf("output unexpectedly rewritten: %s", outs[0])
	}
}

func TestSubstituteNodeOnOutput(t *testing.T) {
	c := logic.NewC()
	a, b := c.NewIn(), c.NewIn()
	g := c.And(a, b)
	c.AddOutput(g.Not())

	newSig := c.NewIn()
	c.SubstituteNode(g, newSig)

	outs := c.Outputs()
	if outs[0] != newSig.Not() {
		t.Errorf("output not redirected with composed complement: %s", outs[0])
	}
}
