package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change events from the store",
	Long: `Watch the backing store and print an event line for every create, patch
and delete as it happens. Only the filesystem adapter supports watching.
Press Ctrl+C to stop.`,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := svc.Watch(ctx, watchPattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		color.Cyan("watching (pattern %q), Ctrl+C to stop", watchPattern)
		for event := range events {
			fmt.Println(event.String())
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "*", "Glob pattern of document ids to watch")
	rootCmd.AddCommand(watchCmd)
}
