// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "airw",
	Short: "airw reduces the depth of And-Inverter Graphs in aiger files.",
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log the rewrite pass summary at debug level")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			log.SetLevel(log.DebugLevel)
		}
	}
}
