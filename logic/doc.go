// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package logic provides the host graph service for combinational
// And-Inverter Graphs: node creation, hash-consed AND-gate construction,
// primary input/output bookkeeping, and atomic fanout substitution.
//
// Package logic uses the same packed literal representation as package z
// throughout, so a node's identity and a signal pointing at it share one
// integer comparison.
//
// This package is the "host" interface consumed by package
// rewrite: C implements rewrite.Host directly.
package logic
