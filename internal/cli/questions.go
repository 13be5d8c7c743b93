package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stemsi/quizxmentor-backend/internal/spreadsheet"
)

func newSampleQuestionsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sample-questions",
		Short: "Write a workbook of sample questions ready for upload",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(out)
			if err != nil {
				return err
			}

			if err := spreadsheet.WriteQuestions(f, spreadsheet.SampleQuestions); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(spreadsheet.SampleQuestions), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "sample_questions.xlsx", "output file")
	return cmd
}
