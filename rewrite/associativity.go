// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package rewrite

import "github.com/go-air/airw/z"

// tryAssociativity implements associativity: given n = AND(c0, c1) with c0 = AND(g0,
// g1), reassociate so that g0 -- the deeper of c0's own fanins -- rises to
// the top, shortening the critical path through it by one level.
//
//	n = AND(c0, c1)    c0 = AND(g0, g1)
//	bottom := AND(c1, g1)
//	top    := AND(bottom, g0)
func (r *Rewriter) tryAssociativity(n z.Lit) bool {
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
	if c0.level-c1.level < 2 {
		return false
	}
	if r.host.IsComplemented(c0.sig) {
		return false
	}
	g0, g1, ok := r.collectFanins(c0.node)
	if !ok {
		return false
	}
	if g0.level == g1.level {
		return false
	}

	bottom := r.host.CreateAnd(c1.sig, g1.sig)
	top := r.host.CreateAnd(bottom, g0.sig)
	r.host.SubstituteNode(n, top)
	return true
}
