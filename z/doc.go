// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package z provides the packed variable/literal representation shared by
// every layer of this module: the host AIG, the level oracle, and the
// algebraic rewriter all exchange signals as z.Lit values.
//
// A Var identifies a node.  A Lit pairs a Var with a complement bit, so
// negation is a single XOR and equality is a single integer compare.
package z
