// Package httpapi provides the remote evaluator client. Responses are
// validated against an embedded JSON Schema before decoding, requests are
// rate limited and retried with backoff.
package httpapi

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

//go:embed schema.json
var findingsSchema string

// retryAttempts bounds transient-failure retries per evaluation.
const retryAttempts = 3

// Ensure Client implements the interface.
var _ driven.Evaluator = (*Client)(nil)

// Client calls a remote compliance evaluation API.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	schema     *jsonschema.Schema
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// New creates a remote evaluator client.
func New(settings domain.EvaluatorSettings, opts ...Option) (*Client, error) {
	if settings.Endpoint == "" {
		return nil, domain.ErrEvaluatorUnavailable
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader([]byte(findingsSchema))); err != nil {
		return nil, fmt.Errorf("loading findings schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling findings schema: %w", err)
	}

	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	rpm := settings.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	c := &Client{
		endpoint:   settings.Endpoint,
		apiKey:     settings.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		schema:     schema,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name identifies the evaluator in stored reviews.
func (c *Client) Name() string {
	return "remote"
}

// request/response wire shapes.

type evaluateRequest struct {
	Regulation string        `json:"regulation"`
	Pages      []requestPage `json:"pages"`
}

type requestPage struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

type evaluateResponse struct {
	Findings []wireFinding `json:"findings"`
}

type wireFinding struct {
	ID           string            `json:"id"`
	Rule         string            `json:"rule"`
	Severity     string            `json:"severity"`
	Summary      string            `json:"summary"`
	Evidence     []wireEvidence    `json:"evidence"`
	Transactions []wireTransaction `json:"transactions"`
}

type wireTransaction struct {
	Ref      string         `json:"ref"`
	Evidence []wireEvidence `json:"evidence"`
}

type wireEvidence struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Evaluate posts the document pages and regulation to the remote API.
func (c *Client) Evaluate(ctx context.Context, pages []domain.RenderedPage, regulation domain.Regulation) ([]domain.Finding, error) {
	req := evaluateRequest{Regulation: regulation.ID}
	for _, p := range pages {
		req.Pages = append(req.Pages, requestPage{Page: p.Page, Text: p.Text()})
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var body []byte
	err = retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			body, err = c.post(ctx, payload)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("calling evaluator: %w", err)
	}

	return c.decode(body)
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/v1/evaluate", bytes.NewReader(payload))
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		// Transient: worth retrying.
		return nil, fmt.Errorf("evaluator status %d", resp.StatusCode)
	default:
		return nil, retry.Unrecoverable(fmt.Errorf("evaluator status %d: %s", resp.StatusCode, body))
	}
}

// decode validates the response against the embedded schema and maps it
// to domain findings. Both flat and nested evidence shapes are accepted.
func (c *Client) decode(body []byte) ([]domain.Finding, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvidence, err)
	}
	if err := c.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvidence, err)
	}

	var resp evaluateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvidence, err)
	}

	findings := make([]domain.Finding, 0, len(resp.Findings))
	for _, wf := range resp.Findings {
		f := domain.Finding{
			ID:       wf.ID,
			Rule:     wf.Rule,
			Severity: domain.ParseSeverity(wf.Severity),
			Summary:  wf.Summary,
		}
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		for _, ev := range wf.Evidence {
			f.Evidence = append(f.Evidence, domain.EvidenceEntry{PrintedPage: ev.Page, Text: ev.Text})
		}
		for _, tx := range wf.Transactions {
			dt := domain.Transaction{Ref: tx.Ref}
			for _, ev := range tx.Evidence {
				dt.Evidence = append(dt.Evidence, domain.EvidenceEntry{PrintedPage: ev.Page, Text: ev.Text})
			}
			f.Transactions = append(f.Transactions, dt)
		}
		findings = append(findings, f)
	}

	logger.Debug("remote evaluator returned %d findings", len(findings))
	return findings, nil
}
