// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package equiv checks Boolean function preservation (P1) across a
// rewrite: it snapshots a circuit's outputs over its primary inputs before
// mutating it in place, then compares against the same evaluation taken
// afterward.
//
// Capture/Equal enumerate every assignment and are exact, but only
// tractable up to a couple dozen primary inputs.  CaptureSample/EqualSample
// evaluate 64 assignments at a time via logic.C.Eval64, in the style of
// c_test.go's TestEval64, and are the practical substitute used for larger
// graphs.
package equiv
