package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitecraft/internal/db"
	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/progress"
	"github.com/ziadkadry99/sitecraft/internal/projects"
	"github.com/ziadkadry99/sitecraft/internal/render"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a website from a business description",
	Long: `Sends the description to the configured model, validates the returned
document and writes it as JSON. Use --html to also write the rendered page
and --save to store the result as a project for the editor server.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("out", "o", "site.json", "document output path (- for stdout)")
	generateCmd.Flags().String("html", "", "also write the rendered page to this path")
	generateCmd.Flags().String("style", "", "style preference (e.g. minimal, bold)")
	generateCmd.Flags().String("colors", "", "color scheme hint")
	generateCmd.Flags().String("industry", "", "industry hint")
	generateCmd.Flags().String("audience", "", "target audience hint")
	generateCmd.Flags().Bool("save", false, "store the result as a project")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	reporter := progress.NewReporter()
	orch, err := newOrchestrator(cfg, logger, generate.WithProgress(progress.Generation(reporter)))
	if err != nil {
		return err
	}

	style, _ := cmd.Flags().GetString("style")
	colors, _ := cmd.Flags().GetString("colors")
	industry, _ := cmd.Flags().GetString("industry")
	audience, _ := cmd.Flags().GetString("audience")

	res, err := orch.Generate(ctx, args[0], generate.Options{
		StylePreference: style,
		ColorScheme:     colors,
		Industry:        industry,
		TargetAudience:  audience,
	})
	reporter.Finish()
	if err != nil {
		return errors.New(generate.UserMessage(err, string(cfg.Environment)))
	}
	doc := res.Document

	out, _ := cmd.Flags().GetString("out")
	if err := writeDocument(out, doc); err != nil {
		return err
	}
	if htmlPath, _ := cmd.Flags().GetString("html"); htmlPath != "" {
		if err := writeOutput(htmlPath, []byte(render.New(render.Options{Static: true}).Render(doc))); err != nil {
			return err
		}
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		id, err := saveProject(ctx, cfg.DatabasePath(), args[0], res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved project %s\n", id)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %q with %d sections in %s\n", doc.Metadata.Title, len(doc.Sections), time.Since(start).Round(time.Millisecond))
	for _, s := range site.SortedSections(doc.Sections) {
		fmt.Fprintf(os.Stderr, "  %d. %-13s %s\n", s.Order, s.Type, s.ID)
	}
	if res.Usage.Model != "" {
		fmt.Fprintf(os.Stderr, "  Model: %s (%d in / %d out tokens, ~$%.4f)\n",
			res.Usage.Model, res.Usage.InputTokens, res.Usage.OutputTokens, res.Usage.CostUSD)
	}
	return nil
}

// saveProject stores a generation result and its usage record.
func saveProject(ctx context.Context, path, prompt string, res *generate.Result) (string, error) {
	database, err := db.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := projects.NewStore(database)
	p := &projects.Project{Prompt: prompt, Document: res.Document}
	if err := store.Create(ctx, p); err != nil {
		return "", err
	}
	err = store.RecordGeneration(ctx, &projects.Generation{
		ProjectID:    p.ID,
		Kind:         projects.KindGenerate,
		Instruction:  prompt,
		Model:        res.Usage.Model,
		InputTokens:  res.Usage.InputTokens,
		OutputTokens: res.Usage.OutputTokens,
		CostUSD:      res.Usage.CostUSD,
	})
	if err != nil {
		return "", err
	}
	return p.ID, nil
}
