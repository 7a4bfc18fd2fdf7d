// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package equiv

import (
	"math/rand"

	"github.com/go-air/airw/logic"
	"github.com/go-air/airw/z"
)

// MaxExhaustive is the largest input count for which Capture's exhaustive
// enumeration is practical; beyond it, use CaptureSample instead.  Capture
// itself does not check it.
const MaxExhaustive = 24

// Snapshot is the truth table of a circuit's outputs over its primary
// inputs, captured exhaustively.
type Snapshot struct {
	ins  []int
	outs []z.Lit
	rows [][]bool
}

// Capture records c's Boolean function over every assignment to the
// primary inputs at node indices ins, for the given outs.
func Capture(c *logic.C, ins []int, outs []z.Lit) *Snapshot {
	n := uint64(1) << uint(len(ins))
	rows := make([][]bool, n)
	for m := uint64(0); m < n; m++ {
		rows[m] = evalRow(c, ins, outs, m)
	}
	return &Snapshot{ins: ins, outs: outs, rows: rows}
}

// Equal reports whether c's current primary outputs compute the same
// function this snapshot was captured from.
func (s *Snapshot) Equal(c *logic.C) bool {
	outs := c.Outputs()
	if len(outs) != len(s.outs) {
		return false
	}
	n := uint64(1) << uint(len(s.ins))
	for m := uint64(0); m < n; m++ {
		got := evalRow(c, s.ins, outs, m)
		want := s.rows[m]
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
	}
	return true
}

func evalRow(c *logic.C, ins []int, outs []z.Lit, mask uint64) []bool {
	vs := make([]bool, c.Len())
	for i, v := range ins {
		vs[v] = mask&(uint64(1)<<uint(i)) != 0
	}
	c.Eval(vs)
	row := make([]bool, len(outs))
	for i, o := range outs {
		v := vs[o.Var()]
		if !o.IsPos() {
			v = !v
		}
		row[i] = v
	}
	return row
}

// SampleSnapshot is a random-simulation fingerprint of a circuit's outputs,
// suitable when the primary input count is too large to enumerate
// exhaustively.  It is not a proof of equivalence, only strong evidence:
// two circuits agreeing on every sampled assignment are equivalent with
// probability rising quickly with the number of rounds.
type SampleSnapshot struct {
	ins  []int
	outs []z.Lit
	cols [][]uint64 // per round, one random uint64 column per input
	rows [][]uint64 // per round, one uint64 per output
}

// CaptureSample records c's outputs over rounds*64 random assignments to
// the primary inputs at node indices ins, using Eval64 to evaluate 64
// assignments per round in parallel.
func CaptureSample(c *logic.C, ins []int, outs []z.Lit, rounds int, rnd *rand.Rand) *SampleSnapshot {
	s := &SampleSnapshot{ins: ins, outs: outs}
	s.cols = make([][]uint64, rounds)
	s.rows = make([][]uint64, rounds)
	for r := 0; r < rounds; r++ {
		cols := make([]uint64, len(ins))
		for i := range cols {
			cols[i] = rnd.Uint64()
		}
		s.cols[r] = cols
		s.rows[r] = evalRound(c, ins, outs, cols)
	}
	return s
}

// EqualSample reports whether c's current primary outputs agree with the
// snapshot on every sampled round, replaying the exact input columns
// captured earlier so the only randomness used is at capture time.
func (s *SampleSnapshot) EqualSample(c *logic.C) bool {
	outs := c.Outputs()
	if len(outs) != len(s.outs) {
		return false
	}
	for r, cols := range s.cols {
		got := evalRound(c, s.ins, outs, cols)
		want := s.rows[r]
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
	}
	return true
}

func evalRound(c *logic.C, ins []int, outs []z.Lit, cols []uint64) []uint64 {
	vs := make([]uint64, c.Len())
	for i, v := range ins {
		vs[v] = cols[i]
	}
	c.Eval64(vs)
	row := make([]uint64, len(outs))
	for i, o := range outs {
		v := vs[o.Var()]
		if !o.IsPos() {
			v = ^v
		}
		row[i] = v
	}
	return row
}
