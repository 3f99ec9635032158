package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "clinrag",
	Short: "Clinical guideline question answering over indexed documents",
	Long: `ClinRAG answers natural-language clinical questions from indexed
medical guidelines (hypertension and type-2 diabetes). Questions are
routed by intent, evidence is retrieved from a local vector store, and
answers are generated strictly from the retrieved passages.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// API keys are commonly kept in a local .env file.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".clinrag.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
