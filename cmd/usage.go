package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitecraft/internal/db"
	"github.com/ziadkadry99/sitecraft/internal/projects"
)

var usageCmd = &cobra.Command{
	Use:   "usage [project-id]",
	Short: "Show token usage and cost of saved projects",
	Long:  `Lists saved projects with the number of generation calls, tokens and estimated cost recorded for each. With a project id, lists every recorded call.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)
}

func runUsage(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	store := projects.NewStore(database)

	if len(args) == 1 {
		return printProjectUsage(ctx, store, args[0])
	}

	list, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No saved projects.")
		return nil
	}

	fmt.Println("Usage")
	fmt.Println("=====")
	var total projects.UsageTotals
	for _, p := range list {
		u, err := store.Usage(ctx, p.ID)
		if err != nil {
			return err
		}
		total.Calls += u.Calls
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
		total.CostUSD += u.CostUSD
		fmt.Printf("  %-36s  %-24.24s  %3d calls  %8d tokens  $%.4f\n",
			p.ID, p.Name, u.Calls, u.InputTokens+u.OutputTokens, u.CostUSD)
	}
	fmt.Printf("  %-36s  %-24s  --------\n", "", "")
	fmt.Printf("  %-36s  %-24s  %3d calls  %8d tokens  $%.4f\n",
		"Total", "", total.Calls, total.InputTokens+total.OutputTokens, total.CostUSD)
	return nil
}

func printProjectUsage(ctx context.Context, store *projects.Store, id string) error {
	p, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	gens, err := store.Generations(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", p.Name, p.ID)
	for _, g := range gens {
		target := g.SectionID
		if target == "" {
			target = "-"
		}
		fmt.Printf("  %s  %-8s  %-36s  %-20s  %6d in  %6d out  $%.4f\n",
			g.CreatedAt.Format("2006-01-02 15:04"), g.Kind, target, g.Model, g.InputTokens, g.OutputTokens, g.CostUSD)
	}
	u, err := store.Usage(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("  Total: %d calls, %d input / %d output tokens, ~$%.4f\n", u.Calls, u.InputTokens, u.OutputTokens, u.CostUSD)
	return nil
}
