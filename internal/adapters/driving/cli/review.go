package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

var (
	reviewRegulation string
	reviewJSON       bool
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Evaluate a document against a regulation",
	Long: `Renders the document, sends its text to the configured evaluator and
stores the resulting findings. Each finding cites the printed pages the
evidence was found on; open them with 'pagemark view'.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewRegulation, "regulation", "r", "",
		"regulation to evaluate against (default from settings)")
	reviewCmd.Flags().BoolVar(&reviewJSON, "json", false, "output findings as JSON")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	regulationID := reviewRegulation
	if regulationID == "" {
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				regulationID = settings.Review.DefaultRegulation
			}
		}
		if regulationID == "" {
			regulationID = domain.DefaultAppSettings().Review.DefaultRegulation
		}
	}

	review, err := reviewService.Run(cmd.Context(), args[0], regulationID)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}

	if reviewJSON {
		return outputReviewJSON(cmd, review)
	}
	return outputReviewTable(cmd, review)
}

func outputReviewJSON(cmd *cobra.Command, review *domain.Review) error {
	data, err := json.MarshalIndent(review, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReviewTable(cmd *cobra.Command, review *domain.Review) error {
	cmd.Printf("Review %s\n", review.ID)
	cmd.Printf("  Document:   %s\n", review.DocumentName)
	cmd.Printf("  Regulation: %s\n", review.RegulationID)
	cmd.Printf("  Evaluator:  %s\n", review.EvaluatorName)
	cmd.Println()

	if len(review.Findings) == 0 {
		cmd.Println("No findings.")
		return nil
	}

	for i, finding := range review.Findings {
		cmd.Printf("[%d] %-8s %s", i+1, finding.Severity, finding.Summary)
		if finding.Rule != "" {
			cmd.Printf(" (%s)", finding.Rule)
		}
		cmd.Println()
		for _, entry := range finding.FlattenEvidence() {
			cmd.Printf("      p.%-4d %s\n", entry.PrintedPage, entry.Text)
		}
	}

	cmd.Println()
	cmd.Printf("Open the citations with: pagemark view %q --review %s\n",
		review.DocumentPath, review.ID)
	return nil
}
