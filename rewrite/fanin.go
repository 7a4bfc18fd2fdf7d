// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package rewrite

import "github.com/go-air/airw/z"

// fanin bundles one fanin's signal, node, and cached level: the (sig,
// node, level) triple used by every rule.
type fanin struct {
	sig   z.Lit
	node  z.Lit
	level uint32
}

// collectFanins gathers n's two fanins and sorts the pair so index 0 has
// the higher level; ties keep original order.  ok is false if n does not
// have exactly two fanins, in which case the caller must decline without
// mutating the graph.
func (r *Rewriter) collectFanins(n z.Lit) (f0, f1 fanin, ok bool) {
	var fs [2]fanin
	count := 0
	r.host.ForeachFanin(n, func(sig z.Lit) {
		if count < 2 {
			node := r.host.GetNode(sig)
			fs[count] = fanin{sig: sig, node: node, level: r.lv.Level(node)}
		}
		count++
	})
	if count != 2 {
		return fanin{}, fanin{}, false
	}
	f0, f1 = fs[0], fs[1]
	if f1.level > f0.level {
		f0, f1 = f1, f0
	}
	return f0, f1, true
}
