// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package airw_test

import (
	"testing"

	"github.com/go-air/airw"
	"github.com/go-air/airw/equiv"
	"github.com/go-air/airw/levels"
	"github.com/go-air/airw/logic"
	"github.com/go-air/airw/z"
)

// TestRewritePreservesFunction exercises Rewrite, the package's single
// public operation, on the same left-deep associativity scenario used in
// package rewrite's tests, and checks both that depth strictly decreases
// and that the Boolean function computed is unchanged.
func TestRewritePreservesFunction(t *testing.T) {
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

	inPos := c.InPos(nil)
	outs := append([]z.Lit(nil), c.Outputs()...)
	snap := equiv.Capture(c, inPos, outs)

	depthBefore := depthOf(c)
	n := airw.Rewrite(c)
	if n == 0 {
		t.Fatalf("expected at least one rewrite")
	}
	if depthOf(c) >= depthBefore {
		t.Errorf("depth did not decrease: before %d after %d", depthBefore, depthOf(c))
	}
	if !snap.Equal(c) {
		t.Errorf("Rewrite changed the circuit's function")
	}
}

// TestRewriteIdempotent runs Rewrite twice over the same circuit; the
// second call must find nothing left to do.
func TestRewriteIdempotent(t *testing.T) {
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

	airw.Rewrite(c)
	if n := airw.Rewrite(c); n != 0 {
		t.Errorf("expected fixed point, got %d further rewrites", n)
	}
}

func depthOf(c *logic.C) uint32 {
	return levels.New(c).Depth()
}
