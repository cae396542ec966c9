package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitecraft/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sitecraft configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a provider, quality tier and environment, and writes a .sitecraft.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
