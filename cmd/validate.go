package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitecraft/internal/parser"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a document or a raw model response",
	Long: `Checks a saved document against the document invariants. With --raw the
file is treated as a model response instead: the JSON payload is extracted,
checked against the schema and validated the way generation would.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("raw", false, "treat the file as a raw model response")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, _ := cmd.Flags().GetBool("raw")

	var (
		doc *site.Document
		err error
	)
	if raw {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err = parser.ParseDocument(string(data))
	} else {
		doc, err = readDocument(path)
	}

	if err != nil {
		var e *site.Error
		if errors.As(err, &e) && len(e.Details) > 0 {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Kind)
			for _, v := range e.Details {
				fmt.Fprintf(os.Stderr, "  - %s\n", v)
			}
			return fmt.Errorf("%d violation(s)", len(e.Details))
		}
		return err
	}

	fmt.Printf("%s: valid (%d sections)\n", path, len(doc.Sections))
	return nil
}
