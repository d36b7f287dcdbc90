package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bitcoin-echo version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", appName, appVersion)
	},
}
