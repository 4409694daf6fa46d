package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored reviews",
	Long:  `Lists all stored reviews, newest first.`,
	RunE:  runHistory,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored review",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	reviews, err := reviewService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing reviews: %w", err)
	}

	if len(reviews) == 0 {
		cmd.Println("No stored reviews.")
		return nil
	}

	for _, review := range reviews {
		cmd.Printf("%s  %s  %-8s  %d finding(s), %d citation(s)  %s\n",
			review.ID,
			review.CreatedAt.Format("2006-01-02 15:04"),
			review.RegulationID,
			len(review.Findings),
			review.EvidenceCount(),
			review.DocumentName,
		)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	if err := reviewService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting review %s: %w", args[0], err)
	}
	cmd.Printf("Deleted review %s\n", args[0])
	return nil
}
