// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/airw"
	"github.com/go-air/airw/aiger"
	"github.com/go-air/airw/levels"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <in.aag|in.aig> <out.aag|out.aig>",
	Short: "Apply the algebraic rewriter to an aiger file, reporting the depth change.",
	Args:  cobra.ExactArgs(2),
	RunE:  runRewrite,
}

func init() {
	rewriteCmd.Flags().Bool("binary", false, "write the output in binary aiger format")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	binary, _ := cmd.Flags().GetBool("binary")

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := readAiger(f, in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}

	depthBefore := levels.New(t.C).Depth()
	nodesBefore := t.C.Len()
	n := airw.Rewrite(t.C)
	// Rewrite may substitute output drivers; write the circuit's current outputs.
	t.Outputs = append(t.Outputs[:0], t.C.Outputs()...)
	lv := levels.New(t.C)

	log.WithFields(log.Fields{
		"file":         in,
		"rewrites":     n,
		"depth_before": depthBefore,
		"depth_after":  lv.Depth(),
		"nodes_before": nodesBefore,
		"nodes_after":  t.C.Len(),
	}).Info("airw: rewrite complete")

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	if binary {
		return t.WriteBinary(w)
	}
	return t.WriteAscii(w)
}

func readAiger(f *os.File, name string) (*aiger.T, error) {
	if len(name) >= 4 && name[len(name)-4:] == ".aig" {
		return aiger.ReadBinary(f)
	}
	return aiger.ReadAscii(f)
}
