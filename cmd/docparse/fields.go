package main

import (
	"context"

	"github.com/spf13/cobra"

	docparse "github.com/sureshkumar2704/Adobe-India-Hackathon-2025"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/batch"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/output"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields [pdf files...]",
	Short: "Extract labeled key-value fields from PDF documents",
	Long: `Fields scans each document's body text for labeled lines such as
"Deadline: 1 August 2025" and emits a fixed five-key record: title,
objective, deadline, eligibility_criteria, and submission_guidelines.
Fields absent from the document are null, never omitted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := loadJobs(args)
		if err != nil {
			return err
		}
		outDir, _ := cmd.Flags().GetString("out")

		return runBatch(cmd.Context(), jobs, outDir, func(ctx context.Context, job batch.Job) ([]byte, error) {
			record, warnings, err := docparse.FromBytes(job.Name, job.Data).Fields()
			if err != nil {
				return nil, err
			}
			if len(warnings) > 0 {
				printWarnings(job.Name, []string{docparse.FormatWarnings(warnings)})
			}
			return output.Marshal(record)
		})
	},
}

func init() {
	fieldsCmd.Flags().String("out", "", "output directory for per-document JSON files")

	rootCmd.AddCommand(fieldsCmd)
}
