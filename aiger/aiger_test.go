// Copyright 2018 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aiger

import (
	"bytes"
	"testing"

	"github.com/go-air/airw/equiv"
	"github.com/go-air/airw/logic"
)

func makeExample() *T {
	c := logic.NewC()
	a, b, cc := c.NewIn(), c.NewIn(), c.NewIn()
	ab := c.And(a, b)
	top := c.And(ab, cc)
	c.AddOutput(top)
	return MakeFor(c)
}

func TestWriteAsciiReadBack(t *testing.T) {
	orig := makeExample()
	var buf bytes.Buffer
	if err := orig.WriteAscii(&buf); err != nil {
		t.Fatalf("WriteAscii: %v", err)
	}
	got, err := ReadAscii(&buf)
	if err != nil {
		t.Fatalf("ReadAscii: %v", err)
	}
	if len(got.Inputs) != len(orig.Inputs) || len(got.Outputs) != len(orig.Outputs) {
		t.Fatalf("input/output count mismatch: got %d/%d want %d/%d",
			len(got.Inputs), len(got.Outputs), len(orig.Inputs), len(orig.Outputs))
	}
	assertEquivalent(t, orig, got)
}

func TestWriteBinaryReadBack(t *testing.T) {
	orig := makeExample()
	var buf bytes.Buffer
	if err := orig.WriteBinary(&buf); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	got, err := ReadBinary(&buf)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	assertEquivalent(t, orig, got)
}

func TestReadAsciiRejectsSequentialLogic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("aag 2 1 1 1 0\n2\n4 4\n4\n")
	if _, err := ReadAscii(&buf); err != NonCombinational {
		t.Errorf("expected NonCombinational, got %v", err)
	}
}

// assertEquivalent relies on ReadAscii/ReadBinary recreating inputs and AND
// gates in the same order they were originally built, so orig and got share
// the same variable layout and a snapshot captured against one applies
// directly to the other.
func assertEquivalent(t *testing.T, orig, got *T) {
	t.Helper()
	idx := make([]int, len(orig.Inputs))
	for i, in := range orig.Inputs {
		idx[i] = int(in.Var())
	}
	snap := equiv.Capture(orig.C, idx, orig.Outputs)
	if !snap.Equal(got.C) {
		t.Fatalf("round-tripped circuit computes a different function")
	}
}
