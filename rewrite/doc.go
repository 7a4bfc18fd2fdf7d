// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package rewrite implements the depth-reducing algebraic rewriter: the
// rule bank (associativity, two-level distributivity,
// three-level distributivity) and the fixed-point driver.
//
// Package rewrite is consumed against two small interfaces, Host and
// LevelOracle.  It does not know how
// nodes are stored or how levels are cached; package logic and package
// levels provide concrete implementations that satisfy them.
package rewrite
