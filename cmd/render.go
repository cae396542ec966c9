package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitecraft/internal/export"
)

var renderCmd = &cobra.Command{
	Use:   "render <site.json>",
	Short: "Render a document as a standalone HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		page, err := export.Export(doc, export.FormatHTML)
		if err != nil {
			return err
		}
		return writeOutput(out, page)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <site.json>",
	Short: "Export a document as HTML, JSON or Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		data, err := export.Export(doc, format)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = "site." + format.Extension()
		}
		if err := writeOutput(out, data); err != nil {
			return err
		}
		if out != "-" {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("out", "o", "-", "output path (- for stdout)")
	exportCmd.Flags().StringP("format", "f", "html", "export format: html, json or markdown")
	exportCmd.Flags().StringP("out", "o", "", "output path (defaults to site.<ext>, - for stdout)")
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
}
