package services

import (
	"fmt"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEvaluatorEndpoint = "evaluator.endpoint"
	keyEvaluatorAPIKey   = "evaluator.api_key"
	keyEvaluatorTimeout  = "evaluator.timeout_seconds"
	keyEvaluatorRPM      = "evaluator.requests_per_minute"
	keyDefaultRegulation = "review.default_regulation"
	keyPlaintextLines    = "render.plaintext_lines_per_page"
	keyPageWidth         = "render.page_width"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Evaluator: domain.EvaluatorSettings{
			Endpoint:          s.configStore.GetString(keyEvaluatorEndpoint),
			APIKey:            s.configStore.GetString(keyEvaluatorAPIKey),
			TimeoutSeconds:    s.getInt(keyEvaluatorTimeout, defaults.Evaluator.TimeoutSeconds),
			RequestsPerMinute: s.getInt(keyEvaluatorRPM, defaults.Evaluator.RequestsPerMinute),
		},
		Review: domain.ReviewSettings{
			DefaultRegulation: s.getString(keyDefaultRegulation, defaults.Review.DefaultRegulation),
		},
		Render: domain.RenderSettings{
			PlaintextLinesPerPage: s.getInt(keyPlaintextLines, defaults.Render.PlaintextLinesPerPage),
			PageWidth:             s.getInt(keyPageWidth, defaults.Render.PageWidth),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyEvaluatorEndpoint, settings.Evaluator.Endpoint); err != nil {
		return fmt.Errorf("save evaluator endpoint: %w", err)
	}
	if settings.Evaluator.APIKey != "" {
		if err := s.configStore.Set(keyEvaluatorAPIKey, settings.Evaluator.APIKey); err != nil {
			return fmt.Errorf("save evaluator api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyEvaluatorTimeout, settings.Evaluator.TimeoutSeconds); err != nil {
		return fmt.Errorf("save evaluator timeout: %w", err)
	}
	if err := s.configStore.Set(keyEvaluatorRPM, settings.Evaluator.RequestsPerMinute); err != nil {
		return fmt.Errorf("save evaluator requests_per_minute: %w", err)
	}
	if err := s.configStore.Set(keyDefaultRegulation, settings.Review.DefaultRegulation); err != nil {
		return fmt.Errorf("save default regulation: %w", err)
	}
	if err := s.configStore.Set(keyPlaintextLines, settings.Render.PlaintextLinesPerPage); err != nil {
		return fmt.Errorf("save plaintext lines_per_page: %w", err)
	}
	if err := s.configStore.Set(keyPageWidth, settings.Render.PageWidth); err != nil {
		return fmt.Errorf("save page width: %w", err)
	}
	return nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}
