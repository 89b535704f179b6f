package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"

	"github.com/aretw0/planstore/pkg/core"
)

var putID string

var putCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Create or replace a document",
	Long: `Create or replace a document from a JSON file (or stdin when no file is
given). The id defaults to the document's objectId field.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := readDocument(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading document: %v\n", err)
			os.Exit(1)
		}

		id := putID
		if id == "" {
			id, _ = doc["objectId"].(string)
		}
		if id == "" {
			fmt.Fprintln(os.Stderr, "Error: no id given and document has no objectId")
			os.Exit(1)
		}

		svc, err := newService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
			os.Exit(1)
		}

		result, err := svc.Put(context.Background(), id, doc)
		if err != nil {
			exitWithStoreError(err)
		}

		if result.Unchanged {
			color.Yellow("unchanged %s", result.ETag)
			return
		}
		color.Green("created %s", result.ETag)
	},
}

func init() {
	putCmd.Flags().StringVar(&putID, "id", "", "Document id (defaults to the objectId field)")
	rootCmd.AddCommand(putCmd)
}

func readDocument(args []string) (core.Document, error) {
	var raw []byte
	var err error

	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return nil, err
	}

	var doc core.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return doc, nil
}

// exitWithStoreError maps the typed error taxonomy to CLI output.
func exitWithStoreError(err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		color.Red("validation failed:")
		for _, msg := range verr.Messages {
			fmt.Fprintf(os.Stderr, "  - %s\n", msg)
		}
		os.Exit(1)
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		color.Red("not found")
	case errors.Is(err, core.ErrPreconditionFailed):
		color.Red("precondition failed: document changed, re-fetch and retry with the current etag")
	case errors.Is(err, core.ErrETagRequired):
		color.Red("an etag is required (use --etag)")
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
