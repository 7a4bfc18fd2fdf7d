// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package airw is the depth-reducing algebraic rewriter for combinational
// And-Inverter Graphs: it repeatedly applies associativity and
// distributivity identities to nodes on the critical path until no rule
// yields a further strict depth improvement.
//
// Rewrite is the single public operation. It
// wires a host graph (package logic) to a level oracle (package levels)
// and runs the rule bank of package rewrite to a fixed point.
package airw

import (
	log "github.com/sirupsen/logrus"

	"github.com/go-air/airw/levels"
	"github.com/go-air/airw/logic"
	"github.com/go-air/airw/rewrite"
)

// Rewrite reduces the depth of c in place, without changing the Boolean
// function computed by any of its primary outputs, and returns the number
// of local rewrites applied.
//
// c's base type is always an AIG -- there is no other circuit type in this
// module -- so the precondition that the graph be an AIG is enforced by
// the type system rather than a runtime assertion.
func Rewrite(c *logic.C) int {
	before := c.Len()
	lv := levels.New(c)
	depthBefore := lv.Depth()

	rw := rewrite.New(c, lv)
	n := rw.Run()

	log.WithFields(log.Fields{
		"rewrites":     n,
		"depth_before": depthBefore,
		"depth_after":  lv.Depth(),
		"nodes_before": before,
		"nodes_after":  c.Len(),
	}).Debug("airw: rewrite pass complete")
	return n
}
