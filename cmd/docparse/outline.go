package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	docparse "github.com/sureshkumar2704/Adobe-India-Hackathon-2025"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/batch"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/layout"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/output"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [pdf files...]",
	Short: "Extract the title and heading outline of PDF documents",
	Long: `Outline recovers the structural skeleton of each document: the title
and a flat list of headings (H1 through H4) with their pages. A single
input prints JSON to stdout; multiple inputs are processed concurrently
and written per document into the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := loadJobs(args)
		if err != nil {
			return err
		}
		outDir, _ := cmd.Flags().GetString("out")

		heading := layout.DefaultHeadingConfig()
		heading.PromoteEmphasis = viper.GetBool("outline.promote_emphasis")

		return runBatch(cmd.Context(), jobs, outDir, func(ctx context.Context, job batch.Job) ([]byte, error) {
			record, warnings, err := docparse.FromBytes(job.Name, job.Data).
				WithHeadingConfig(heading).
				Outline()
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
	outlineCmd.Flags().String("out", "", "output directory for per-document JSON files")
	outlineCmd.Flags().Bool("promote-emphasis", true, "promote emphasized standalone lines to sub-headings")

	viper.BindPFlag("outline.promote_emphasis", outlineCmd.Flags().Lookup("promote-emphasis"))
	viper.SetDefault("outline.promote_emphasis", true)

	rootCmd.AddCommand(outlineCmd)
}
