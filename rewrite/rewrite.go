// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package rewrite

import "github.com/go-air/airw/z"

// Host is the host graph service: node identity, fanin iteration,
// hash-consed AND construction, and node substitution.
type Host interface {
	// ForeachGate visits every current AND gate exactly once, in a
	// deterministic order.
	ForeachGate(visit func(n z.Lit))
	// ForeachFanin visits each fanin of AND gate n as a signal, exactly
	// twice, in a stable order.
	ForeachFanin(n z.Lit, visit func(sig z.Lit))
	// GetNode returns the node a signal refers to.
	GetNode(sig z.Lit) z.Lit
	// IsComplemented reports whether sig carries its node's negation.
	IsComplemented(sig z.Lit) bool
	// CreateAnd returns a signal for "a and b", hash-consed.
	CreateAnd(a, b z.Lit) z.Lit
	// SubstituteNode redirects every fanout edge from old to new.
	SubstituteNode(old, new z.Lit)
}

// LevelOracle is the level oracle: per-node level and critical-path
// membership, recomputed on demand.
type LevelOracle interface {
	Level(n z.Lit) uint32
	IsOnCriticalPath(n z.Lit) bool
	UpdateLevels()
}

// Rewriter drives the fixed-point sweep over a host graph, using a
// level oracle to decide when each rule in the rule bank
// yields a strict depth improvement.
type Rewriter struct {
	host Host
	lv   LevelOracle
}

// New creates a Rewriter over host, reading levels and critical-path
// membership from lv.
func New(host Host, lv LevelOracle) *Rewriter {
	return &Rewriter{host: host, lv: lv}
}

// Run iterates the fixed-point sweep to completion and returns the
// total number of successful rewrites applied.
func (r *Rewriter) Run() int {
	total := 0
	for {
		changed := false
		r.host.ForeachGate(func(n z.Lit) {
			if r.tryAlgebraicRules(n) {
				r.lv.UpdateLevels()
				changed = true
				total++
			}
		})
		if !changed {
			return total
		}
	}
}

// tryAlgebraicRules applies the rule bank in order -- associativity, then
// two-level distributivity, then three-level distributivity -- and returns
// true on the first rule that fires.
func (r *Rewriter) tryAlgebraicRules(n z.Lit) bool {
	if r.tryAssociativity(n) {
		return true
	}
	if r.tryDistributivity(n) {
		return true
	}
	if r.tryThreeLevelDistributivity(n) {
		return true
	}
	return false
}
