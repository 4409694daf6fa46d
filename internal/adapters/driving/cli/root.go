// Package cli implements the cobra command-line interface for pagemark.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

// Services injected by the composition root.
var (
	reviewService   driving.ReviewService
	renderService   driving.RenderService
	settingsService driving.SettingsService
)

// version is the build version, overridden at link time.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pagemark",
	Short: "Review documents against compliance regulations",
	Long: `Pagemark evaluates documents against compliance regulations and lets
you inspect each finding at its cited page, with the evidence highlighted.

Run 'pagemark review <file>' to evaluate a document, then
'pagemark view <file> --review <id>' to step through the citations.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetReviewService injects the review service.
func SetReviewService(s driving.ReviewService) {
	reviewService = s
}

// SetRenderService injects the render service.
func SetRenderService(s driving.RenderService) {
	renderService = s
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
