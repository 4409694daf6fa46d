// Command pagemark reviews documents against compliance regulations and
// opens their findings in an interactive terminal viewer.
package main

import (
	"fmt"
	"os"

	configfile "github.com/custodia-labs/pagemark-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driven/evaluator/httpapi"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driven/evaluator/local"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pagemark-cli/internal/core/services"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
	"github.com/custodia-labs/pagemark-cli/internal/renderers"
	"github.com/custodia-labs/pagemark-cli/internal/renderers/pdf"
	"github.com/custodia-labs/pagemark-cli/internal/renderers/plaintext"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		settings = domain.DefaultAppSettings()
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("initialising storage: %w", err)
	}
	defer store.Close()

	registry := renderers.NewRegistry()
	registry.Register(pdf.New())
	registry.Register(plaintext.NewWithLinesPerPage(settings.Render.PlaintextLinesPerPage))

	renderService := services.NewRenderService(registry)
	reviewService := services.NewReviewService(
		renderService,
		buildEvaluator(settings.Evaluator),
		store,
		settings.Render.PageWidth,
	)

	cli.SetReviewService(reviewService)
	cli.SetRenderService(renderService)
	cli.SetSettingsService(settingsService)
	cli.SetVersion(version)

	return cli.Execute()
}

// buildEvaluator picks the remote evaluator when an endpoint is
// configured and falls back to the built-in local rules otherwise.
func buildEvaluator(settings domain.EvaluatorSettings) driven.Evaluator {
	if settings.Endpoint == "" {
		return local.New()
	}

	client, err := httpapi.New(settings)
	if err != nil {
		logger.Warn("remote evaluator unavailable, using local rules: %v", err)
		return local.New()
	}
	return client
}
