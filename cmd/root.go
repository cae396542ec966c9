package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitecraft/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sitecraft",
	Short: "AI-powered website generation and section editing",
	Long: `Sitecraft turns a short business description into a structured,
editable website. Sections can be refined with natural-language
instructions, edited by hand, reordered, undone and redone, then
rendered as a self-contained HTML page or exported as JSON or Markdown.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
