// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package rewrite

import "github.com/go-air/airw/z"

// tryThreeLevelDistributivity realizes the identity
//
//	((g . x2) + x3) . x4 == (g . (x2 . x4)) + (x3 . x4)
//
// which trades one level off g's critical path for extra width three
// levels down.  With n = AND(c0, c1), c0 = AND(nep0, nep1), nep0 = AND(gn0,
// gn1), and the bindings x4 := sig(c1), x3 := ¬sig(nep1), x2 := sig(gn1),
// g := sig(gn0):
//
//	top := AND( ¬AND(g, AND(x2, x4)), ¬AND(x3, x4) )
//	substitute n <- ¬top
func (r *Rewriter) tryThreeLevelDistributivity(n z.Lit) bool {
	if !r.lv.IsOnCriticalPath(n) {
		return false
	}
	c0, c1, ok := r.collectFanins(n)
	if !ok {
		return false
	}
	if !r.lv.IsOnCriticalPath(c0.node) || r.lv.IsOnCriticalPath(c1.node) {
		return false
	}
	if c0.level-c1.level < 3 {
		return false
	}
	if !r.host.IsComplemented(c0.sig) {
		return false
	}

	nep0, nep1, ok := r.collectFanins(c0.node)
	if !ok {
		return false
	}
	if !r.host.IsComplemented(nep0.sig) || !r.host.IsComplemented(nep1.sig) {
		return false
	}
	if !r.lv.IsOnCriticalPath(nep0.node) || r.lv.IsOnCriticalPath(nep1.node) {
		return false
	}

	gn0, gn1, ok := r.collectFanins(nep0.node)
	if !ok {
		return false
	}
	if r.lv.IsOnCriticalPath(gn1.node) {
		return false
	}

	x4 := c1.sig
	x3 := nep1.sig.Not()
	x2 := gn1.sig
	g := gn0.sig

	x3x4 := r.host.CreateAnd(x3, x4)
	x2x4 := r.host.CreateAnd(x2, x4)
	gx2x4 := r.host.CreateAnd(g, x2x4)
	top := r.host.CreateAnd(gx2x4.Not(), x3x4.Not())
	r.host.SubstituteNode(n, top.Not())
	return true
}
