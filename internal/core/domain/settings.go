package domain

// EvaluatorSettings configures the remote evaluation API.
// An empty endpoint selects the local fallback evaluator.
type EvaluatorSettings struct {
	// Endpoint is the base URL of the remote evaluator.
	Endpoint string

	// APIKey authenticates requests to the remote evaluator.
	APIKey string

	// TimeoutSeconds bounds a single evaluation request.
	TimeoutSeconds int

	// RequestsPerMinute rate-limits calls to the remote evaluator.
	RequestsPerMinute int
}

// ReviewSettings configures review defaults.
type ReviewSettings struct {
	// DefaultRegulation is used when no regulation flag is supplied.
	DefaultRegulation string
}

// RenderSettings configures the rendering collaborator.
type RenderSettings struct {
	// PlaintextLinesPerPage paginates plain text documents that carry
	// no form feeds.
	PlaintextLinesPerPage int

	// PageWidth is the column width pages are rendered at.
	PageWidth int
}

// AppSettings aggregates all user-configurable application settings.
type AppSettings struct {
	Evaluator EvaluatorSettings
	Review    ReviewSettings
	Render    RenderSettings
}

// DefaultAppSettings returns the settings used before any configuration
// is saved.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Evaluator: EvaluatorSettings{
			TimeoutSeconds:    60,
			RequestsPerMinute: 20,
		},
		Review: ReviewSettings{
			DefaultRegulation: "aml-ctf",
		},
		Render: RenderSettings{
			PlaintextLinesPerPage: 40,
			PageWidth:             80,
		},
	}
}
