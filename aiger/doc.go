// Copyright 2018 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// BUG(wsc): This package does not support adding or retrieving aiger
// comments by an API.

// Package aiger implements aiger format version 1.9 ascii and binary
// readers and writers for combinational circuits.
//
// Aiger objects are backed by *logic.C.  Version 1.9's latch, bad-state,
// constraint, justice and fairness sections are always written empty and
// rejected non-empty on read: this module only ever sees combinational
// inputs.
package aiger
