package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
			os.Exit(1)
		}

		if err := svc.Delete(context.Background(), args[0]); err != nil {
			exitWithStoreError(err)
		}
		color.Green("deleted %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
