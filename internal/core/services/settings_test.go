package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Evaluator.TimeoutSeconds, settings.Evaluator.TimeoutSeconds)
	assert.Equal(t, defaults.Review.DefaultRegulation, settings.Review.DefaultRegulation)
	assert.Equal(t, defaults.Render.PlaintextLinesPerPage, settings.Render.PlaintextLinesPerPage)
	assert.Empty(t, settings.Evaluator.Endpoint)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("evaluator.endpoint", "https://eval.example.com")
	_ = store.Set("review.default_regulation", "pci-dss")
	_ = store.Set("render.page_width", 100)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "https://eval.example.com", settings.Evaluator.Endpoint)
	assert.Equal(t, "pci-dss", settings.Review.DefaultRegulation)
	assert.Equal(t, 100, settings.Render.PageWidth)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	in := &domain.AppSettings{
		Evaluator: domain.EvaluatorSettings{
			Endpoint:          "https://eval.example.com",
			APIKey:            "secret",
			TimeoutSeconds:    30,
			RequestsPerMinute: 10,
		},
		Review: domain.ReviewSettings{DefaultRegulation: "aml-ctf"},
		Render: domain.RenderSettings{PlaintextLinesPerPage: 50, PageWidth: 120},
	}

	require.NoError(t, service.Save(in))

	out, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, in.Evaluator.Endpoint, out.Evaluator.Endpoint)
	assert.Equal(t, in.Evaluator.APIKey, out.Evaluator.APIKey)
	assert.Equal(t, in.Evaluator.TimeoutSeconds, out.Evaluator.TimeoutSeconds)
	assert.Equal(t, in.Review.DefaultRegulation, out.Review.DefaultRegulation)
	assert.Equal(t, in.Render.PageWidth, out.Render.PageWidth)
}

func TestSettingsService_Save_EmptyAPIKeyLeftUntouched(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("evaluator.api_key", "existing")
	service := NewSettingsService(store)

	settings, err := service.Get()
	require.NoError(t, err)
	settings.Evaluator.APIKey = ""
	require.NoError(t, service.Save(settings))

	out, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "existing", out.Evaluator.APIKey)
}
