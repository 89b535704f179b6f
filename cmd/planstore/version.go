package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/planstore"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of planstore",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("planstore version %s\n", strings.TrimSpace(planstore.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
