package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitecraft/internal/editor"
	"github.com/ziadkadry99/sitecraft/internal/generate"
)

var modifyCmd = &cobra.Command{
	Use:   "modify <site.json> <section-id> [instruction]",
	Short: "Apply a natural-language edit to one section",
	Long: `Asks the model to change one section of a saved document and merges the
proposal into it. Without an instruction, prints suggested edits instead.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runModify,
}

func init() {
	modifyCmd.Flags().StringP("out", "o", "", "output path (defaults to overwriting the input, - for stdout)")
	rootCmd.AddCommand(modifyCmd)
}

func runModify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path, sectionID := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		sec, ok := doc.Section(sectionID)
		if !ok {
			return fmt.Errorf("section %s not found in %s", sectionID, path)
		}
		for _, s := range orch.Suggest(ctx, sec) {
			fmt.Println("- " + s)
		}
		return nil
	}

	session := editor.NewSession(doc, cfg.HistoryLimit)
	updated, res, err := session.Modify(ctx, orch, sectionID, args[2])
	if err != nil {
		return errors.New(generate.UserMessage(err, string(cfg.Environment)))
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = path
	}
	if err := writeDocument(out, updated); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Updated section %s\n", sectionID)
	if log := res.Section.Metadata.EditHistory; len(log) > 0 {
		changes := log[len(log)-1].Changes
		fmt.Fprintf(os.Stderr, "  Changed content %v, styles %v\n", changes.Content, changes.Styles)
	}
	if res.Usage.Model != "" {
		fmt.Fprintf(os.Stderr, "  Model: %s (%d in / %d out tokens, ~$%.4f)\n",
			res.Usage.Model, res.Usage.InputTokens, res.Usage.OutputTokens, res.Usage.CostUSD)
	}
	return nil
}
