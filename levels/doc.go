// Copyright 2018 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package levels provides the level oracle: per-node level
// annotation and critical-path membership for a combinational
// And-Inverter Graph, recomputed on demand after the host graph mutates.
package levels
