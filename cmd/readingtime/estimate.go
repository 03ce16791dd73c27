package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readingtime/readingtime/pkg/compute"
	"github.com/readingtime/readingtime/pkg/content"
	"github.com/readingtime/readingtime/pkg/richtext"
	"github.com/readingtime/readingtime/pkg/types"
)

// estimateOutput is what estimate prints.
type estimateOutput struct {
	File    string       `json:"file"`
	Format  string       `json:"format"`
	Summary string       `json:"summary"`
	Result  types.Result `json:"result"`
}

func newEstimateCmd(a *app) *cobra.Command {
	var format string
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "estimate <file>",
		Short: "Compute the reading time of a Markdown or rich-text file",
		Long: `Estimate normalizes a file and computes its reading time with the
configured installation parameters.

The format is taken from --format or, with "auto", from the file extension:
.json is read as a rich-text document, anything else as Markdown.

Examples:
  readingtime estimate post.md
  readingtime estimate body.json --format richtext
  readingtime estimate post.md --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("estimate: %w", err)
			}

			src, err := sourceFor(path, format, data)
			if err != nil {
				return err
			}
			res := compute.Compute(compute.InputFrom(content.Normalize(src)), a.cfg.Installation)

			if summaryOnly {
				fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(estimateOutput{
				File:    path,
				Format:  src.Format(),
				Summary: res.Summary(),
				Result:  res,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto | markdown | richtext")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the human-readable summary")
	return cmd
}

// sourceFor builds the content variant for a file.
func sourceFor(path, format string, data []byte) (content.Source, error) {
	if format == "auto" {
		format = "markdown"
		if strings.EqualFold(filepath.Ext(path), ".json") {
			format = "richtext"
		}
	}
	switch format {
	case "markdown":
		return content.Markdown{Text: string(data)}, nil
	case "richtext":
		doc, err := richtext.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("estimate: %s: %w", path, err)
		}
		return content.RichDocument{Doc: doc}, nil
	default:
		return nil, fmt.Errorf("estimate: unknown format %q (want auto, markdown or richtext)", format)
	}
}
