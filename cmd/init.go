package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clinassist/clinrag/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize clinrag configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose a provider and data directory and writes a .clinrag.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
