// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package equiv_test

import (
	"math/rand"
	"testing"

	"github.com/go-air/airw/equiv"
	"github.com/go-air/airw/logic"
	"github.com/go-air/airw/z"
)

func TestCaptureEqualDetectsDivergence(t *testing.T) {
	c := logic.NewC()
	a, b := c.NewIn(), c.NewIn()
	g := c.And(a, b)
	c.AddOutput(g)

	ins := []int{int(a.Var()), int(b.Var())}
	snap := equiv.Capture(c, ins, c.Outputs())
	if !snap.Equal(c) {
		t.Fatalf("snapshot should match itself")
	}

	// A circuit of the same layout whose output computes OR instead of AND:
	// must be detected.
	badC := logic.NewC()
	a2, b2 := badC.NewIn(), badC.NewIn()
	badC.AddOutput(badC.Or(a2, b2))
	if snap.Equal(badC) {
		t.Errorf("expected divergence between AND and OR to be detected")
	}
}

func TestCaptureSampleAgreesWithExhaustive(t *testing.T) {
	c := logic.NewC()
	ins := make([]z.Lit, 4)
	for i := range ins {
		ins[i] = c.NewIn()
	}
	out := c.Ands(ins[0], ins[1], ins[2], ins[3])
	c.AddOutput(out)

	idx := make([]int, len(ins))
	for i, in := range ins {
		idx[i] = int(in.Var())
	}
	exhaustive := equiv.Capture(c, idx, c.Outputs())
	sample := equiv.CaptureSample(c, idx, c.Outputs(), 8, rand.New(rand.NewSource(1)))
	if !exhaustive.Equal(c) || !sample.EqualSample(c) {
		t.Fatalf("snapshots should agree with the unmutated circuit")
	}
}
