// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Var identifies a node in the host graph: a constant, a primary input, or
// an AND gate.  Var 0 is reserved and never denotes a live node; it backs
// LitNull.
type Var uint32

// Pos returns the literal denoting v's own function.
func (v Var) Pos() Lit {
	return Lit(v << 1)
}

// Neg returns the literal denoting the negation of v's function.
func (v Var) Neg() Lit {
	return Lit(v<<1 | 1)
}

func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}
