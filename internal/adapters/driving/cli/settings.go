package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the evaluator endpoint, review defaults and
rendering options. Running without a subcommand shows current settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting value",
	Long: `Set a setting by key. Known keys:

  evaluator.endpoint             Remote evaluator base URL
  evaluator.api_key              Remote evaluator API key
  evaluator.timeout_seconds      Request timeout
  evaluator.requests_per_minute  Rate limit for evaluation requests
  review.default_regulation      Regulation used when none is given
  render.plaintext_lines_per_page  Lines per page for plain text files
  render.page_width              Render width in columns`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Evaluator]")
	endpoint := settings.Evaluator.Endpoint
	if endpoint == "" {
		endpoint = "(not set - using local evaluator)"
	}
	cmd.Printf("  Endpoint: %s\n", endpoint)
	apiKey := "(not set)"
	if settings.Evaluator.APIKey != "" {
		apiKey = "(set)"
	}
	cmd.Printf("  API key: %s\n", apiKey)
	cmd.Printf("  Timeout: %ds\n", settings.Evaluator.TimeoutSeconds)
	cmd.Printf("  Rate limit: %d requests/minute\n", settings.Evaluator.RequestsPerMinute)
	cmd.Println()

	cmd.Println("[Review]")
	cmd.Printf("  Default regulation: %s\n", settings.Review.DefaultRegulation)
	cmd.Println()

	cmd.Println("[Render]")
	cmd.Printf("  Plain text lines per page: %d\n", settings.Render.PlaintextLinesPerPage)
	cmd.Printf("  Page width: %d\n", settings.Render.PageWidth)

	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	switch args[0] {
	case "evaluator.endpoint":
		cmd.Println(settings.Evaluator.Endpoint)
	case "evaluator.api_key":
		cmd.Println(settings.Evaluator.APIKey)
	case "evaluator.timeout_seconds":
		cmd.Println(settings.Evaluator.TimeoutSeconds)
	case "evaluator.requests_per_minute":
		cmd.Println(settings.Evaluator.RequestsPerMinute)
	case "review.default_regulation":
		cmd.Println(settings.Review.DefaultRegulation)
	case "render.plaintext_lines_per_page":
		cmd.Println(settings.Render.PlaintextLinesPerPage)
	case "render.page_width":
		cmd.Println(settings.Render.PageWidth)
	default:
		return fmt.Errorf("unknown setting key: %s", args[0])
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "evaluator.endpoint":
		settings.Evaluator.Endpoint = value
	case "evaluator.api_key":
		settings.Evaluator.APIKey = value
	case "evaluator.timeout_seconds":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		settings.Evaluator.TimeoutSeconds = n
	case "evaluator.requests_per_minute":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		settings.Evaluator.RequestsPerMinute = n
	case "review.default_regulation":
		if _, ok := domain.RegulationByID(value); !ok {
			return fmt.Errorf("unknown regulation: %s", value)
		}
		settings.Review.DefaultRegulation = value
	case "render.plaintext_lines_per_page":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		settings.Render.PlaintextLinesPerPage = n
	case "render.page_width":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		settings.Render.PageWidth = n
	default:
		return fmt.Errorf("unknown setting key: %s", key)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func parsePositiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s requires a positive integer, got %q", key, value)
	}
	return n, nil
}
