package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"
)

var getETag string

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Read a document",
	Long: `Read a document by id and print it as JSON. With --etag the read is
conditional: when the stored document still matches, nothing is printed
and the command reports "not modified".`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
			os.Exit(1)
		}

		result, err := svc.Get(context.Background(), args[0], getETag)
		if err != nil {
			exitWithStoreError(err)
		}

		if result.NotModified {
			color.Yellow("not modified %s", result.ETag)
			return
		}

		out, err := json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		fmt.Fprintf(os.Stderr, "etag: %s\n", result.ETag)
	},
}

func init() {
	getCmd.Flags().StringVar(&getETag, "etag", "", "Only return the document if it no longer matches this etag")
	rootCmd.AddCommand(getCmd)
}
