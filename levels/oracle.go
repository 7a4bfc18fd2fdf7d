// Copyright 2018 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package levels

import "github.com/go-air/airw/z"

// Host is the subset of the host graph service the level oracle needs: the
// node list (in any order; UpdateLevels follows fanin edges), fanin lookup,
// and the current primary outputs.
type Host interface {
	Len() int
	At(i int) z.Lit
	IsAndGate(m z.Lit) bool
	Ins(m z.Lit) (z.Lit, z.Lit)
	Outputs() []z.Lit
}

// Oracle is the level oracle: it caches, per node, the longest
// distance from a primary input and whether the node lies on some longest
// input-to-output path.  Both are invalidated and recomputed by
// UpdateLevels, never incrementally.
type Oracle struct {
	host  Host
	level []uint32
	crit  []bool
	done  []bool
	order []int // topological order established by the last UpdateLevels
	depth uint32
}

// New creates a level oracle over host and computes its initial levels.
func New(host Host) *Oracle {
	o := &Oracle{host: host}
	o.UpdateLevels()
	return o
}

// Level returns n's current cached level.
func (o *Oracle) Level(n z.Lit) uint32 {
	return o.level[n.Var()]
}

// IsOnCriticalPath reports whether n lies on some current longest
// input-to-output path.
func (o *Oracle) IsOnCriticalPath(n z.Lit) bool {
	v := int(n.Var())
	if v >= len(o.crit) {
		return false
	}
	return o.crit[v]
}

// Depth returns the circuit depth: the maximum level over primary-output
// driver nodes.
func (o *Oracle) Depth() uint32 {
	return o.depth
}

// UpdateLevels recomputes every node's level with a memoized walk of fanin
// edges -- not a forward sweep over the node array, since a substituted
// circuit need not have its fanins at smaller indices than their user --
// recording the topological order the walk discovers as it goes.  It then
// recomputes critical-path membership with a single pass over that order in
// reverse, seeded at the deepest output drivers: a node is critical if it
// is such a driver, or if an already-critical user reaches its own level
// minus one through it.
func (o *Oracle) UpdateLevels() {
	n := o.host.Len()
	if n > cap(o.level) {
		o.level = make([]uint32, n)
		o.crit = make([]bool, n)
		o.done = make([]bool, n)
	} else {
		o.level = o.level[:n]
		o.crit = o.crit[:n]
		o.done = o.done[:n]
		for i := range o.crit {
			o.crit[i] = false
			o.done[i] = false
		}
	}
	o.order = o.order[:0]
	stack := make([]int, 0, 8)
	for i := 0; i < n; i++ {
		if o.done[i] {
			continue
		}
		stack = stack[:0]
		stack = append(stack, i)
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if o.done[top] {
				stack = stack[:len(stack)-1]
				continue
			}
			m := o.host.At(top)
			if !o.host.IsAndGate(m) {
				o.level[top] = 0
				o.done[top] = true
				o.order = append(o.order, top)
				stack = stack[:len(stack)-1]
				continue
			}
			a, b := o.host.Ins(m)
			av, bv := int(a.Var()), int(b.Var())
			if !o.done[av] || !o.done[bv] {
				if !o.done[av] {
					stack = append(stack, av)
				}
				if !o.done[bv] {
					stack = append(stack, bv)
				}
				continue
			}
			lv := o.level[av]
			if lb := o.level[bv]; lb > lv {
				lv = lb
			}
			o.level[top] = lv + 1
			o.done[top] = true
			o.order = append(o.order, top)
			stack = stack[:len(stack)-1]
		}
	}
	o.depth = 0
	for _, out := range o.host.Outputs() {
		if lv := o.level[out.Var()]; lv > o.depth {
			o.depth = lv
		}
	}
	for _, out := range o.host.Outputs() {
		if o.level[out.Var()] == o.depth {
			o.crit[out.Var()] = true
		}
	}
	for k := len(o.order) - 1; k >= 0; k-- {
		i := o.order[k]
		if !o.crit[i] {
			continue
		}
		m := o.host.At(i)
		if !o.host.IsAndGate(m) {
			continue
		}
		a, b := o.host.Ins(m)
		lv := o.level[i]
		if o.level[a.Var()]+1 == lv {
			o.crit[a.Var()] = true
		}
		if o.level[b.Var()]+1 == lv {
			o.crit[b.Var()] = true
		}
	}
}
