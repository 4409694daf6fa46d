package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

var (
	viewReviewID string
	viewGoto     string
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open a document in the interactive viewer",
	Long: `Opens the document in the terminal viewer. With --review, the stored
findings of that review are loaded and their evidence is highlighted on
the cited pages. With --goto, the viewer jumps to a printed page as soon
as the document has finished rendering.

Controls:
  n/p      - Next / previous page
  g        - Go to printed page
  o        - Edit printed-to-physical page offset
  Esc      - Back
  Ctrl+C   - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewReviewID, "review", "", "stored review ID to load findings from")
	viewCmd.Flags().StringVar(&viewGoto, "goto", "", "deep-link target, e.g. page-12")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in viewer: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if renderService == nil {
		return errors.New("render service not configured")
	}

	var stored *domain.Review
	if viewReviewID != "" {
		if reviewService == nil {
			return errors.New("review service not configured")
		}
		review, err := reviewService.Get(cmd.Context(), viewReviewID)
		if err != nil {
			return fmt.Errorf("loading review %s: %w", viewReviewID, err)
		}
		stored = review
	}

	ports := tui.NewPorts(reviewService, renderService, settingsService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}

	app.WithContext(cmd.Context())
	app.OpenDocument(args[0], stored, viewGoto)

	if err := app.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}
	return nil
}
