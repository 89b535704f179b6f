package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"
)

var patchETag string

var patchCmd = &cobra.Command{
	Use:   "patch <id> [file]",
	Short: "Merge a partial document into an existing one",
	Long: `Merge a partial JSON document (from a file or stdin) into the stored
document. Objects merge recursively and arrays are combined without
duplicates. The --etag flag is required: the patch only applies when
the stored document still matches the snapshot it was read from.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		patch, err := readDocument(args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading patch: %v\n", err)
			os.Exit(1)
		}

		svc, err := newService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
			os.Exit(1)
		}

		result, err := svc.Patch(context.Background(), args[0], patch, patchETag)
		if err != nil {
			exitWithStoreError(err)
		}

		if result.Unchanged {
			color.Yellow("unchanged %s", result.ETag)
			return
		}

		out, err := json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		color.Green("patched %s", result.ETag)
	},
}

func init() {
	patchCmd.Flags().StringVar(&patchETag, "etag", "", "ETag of the snapshot the patch was built against (required)")
	_ = patchCmd.MarkFlagRequired("etag")
	rootCmd.AddCommand(patchCmd)
}
