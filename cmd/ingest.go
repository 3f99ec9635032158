package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clinassist/clinrag/internal/progress"
)

var (
	ingestTopic string
	ingestTitle string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Upload and index guideline documents",
	Long: `Reads plain-text guideline files, registers them in the document
database and indexes their chunks into the vector store. Re-ingesting a
file with unchanged content is a no-op.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, reg, err := buildStack(cfg)
		if err != nil {
			return err
		}
		defer reg.Close()

		if ingestTitle != "" && len(args) > 1 {
			return fmt.Errorf("--title only applies when ingesting a single file")
		}

		reporter := progress.NewReporter()
		reporter.Start(len(args))

		totalChunks := 0
		for i, path := range args {
			reporter.Update(i, filepath.Base(path))

			data, err := os.ReadFile(path)
			if err != nil {
				reporter.Finish()
				return fmt.Errorf("reading %s: %w", path, err)
			}

			title := ingestTitle
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			doc, existed, err := reg.Upload(cmd.Context(), title, ingestTopic, string(data))
			if err != nil {
				reporter.Finish()
				return fmt.Errorf("uploading %s: %w", path, err)
			}
			if existed && doc.Indexed() {
				continue
			}

			chunks, err := eng.IndexDocument(cmd.Context(), doc.ID)
			if err != nil {
				reporter.Finish()
				return fmt.Errorf("indexing %s: %w", path, err)
			}
			totalChunks += chunks
		}
		reporter.Update(len(args), "done")
		reporter.Finish()

		fmt.Fprintf(os.Stderr, "Ingested %d file(s), %d new chunks indexed\n", len(args), totalChunks)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestTopic, "topic", "", "guideline topic (HTA or DIABETES)")
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "document title (defaults to the file name)")
	rootCmd.AddCommand(ingestCmd)
}
