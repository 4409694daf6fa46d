package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

func testSettings(endpoint string) domain.EvaluatorSettings {
	return domain.EvaluatorSettings{
		Endpoint:          endpoint,
		APIKey:            "test-key",
		TimeoutSeconds:    5,
		RequestsPerMinute: 6000,
	}
}

func testPages() []domain.RenderedPage {
	return []domain.RenderedPage{
		{Page: 1, Fragments: []domain.Fragment{{Text: "hello", Line: 0}, {Text: "world", Line: 0}}},
	}
}

func TestNew_RequiresEndpoint(t *testing.T) {
	_, err := New(domain.EvaluatorSettings{})

	assert.ErrorIs(t, err, domain.ErrEvaluatorUnavailable)
}

func TestEvaluate_FlatEvidenceShape(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v1/evaluate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gdpr", req["regulation"])

		_, _ = w.Write([]byte(`{"findings":[
			{"rule":"r1","severity":"critical","summary":"bad",
			 "evidence":[{"page":3,"text":"snippet"}]}
		]}`))
	}))
	defer srv.Close()

	client, err := New(testSettings(srv.URL))
	require.NoError(t, err)

	findings, err := client.Evaluate(context.Background(), testPages(), domain.Regulation{ID: "gdpr"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, findings, 1)
	assert.Equal(t, "r1", findings[0].Rule)
	assert.Equal(t, domain.SeverityCritical, findings[0].Severity)
	assert.NotEmpty(t, findings[0].ID, "missing IDs are generated")
	require.Len(t, findings[0].Evidence, 1)
	assert.Equal(t, 3, findings[0].Evidence[0].PrintedPage)
}

func TestEvaluate_NestedTransactionShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"findings":[
			{"id":"f1","rule":"r1","summary":"nested",
			 "transactions":[
				{"ref":"tx-9","evidence":[{"page":5,"text":"wire"}]}
			 ]}
		]}`))
	}))
	defer srv.Close()

	client, err := New(testSettings(srv.URL))
	require.NoError(t, err)

	findings, err := client.Evaluate(context.Background(), testPages(), domain.Regulation{ID: "aml-ctf"})

	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Len(t, findings[0].Transactions, 1)
	assert.Equal(t, "tx-9", findings[0].Transactions[0].Ref)

	flat := findings[0].FlattenEvidence()
	require.Len(t, flat, 1)
	assert.Equal(t, 5, flat[0].PrintedPage)
}

func TestEvaluate_SchemaViolationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// findings must be an array.
		_, _ = w.Write([]byte(`{"findings":"nope"}`))
	}))
	defer srv.Close()

	client, err := New(testSettings(srv.URL))
	require.NoError(t, err)

	_, err = client.Evaluate(context.Background(), testPages(), domain.Regulation{ID: "gdpr"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidEvidence)
}

func TestEvaluate_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"findings":[]}`))
	}))
	defer srv.Close()

	client, err := New(testSettings(srv.URL))
	require.NoError(t, err)

	findings, err := client.Evaluate(context.Background(), testPages(), domain.Regulation{ID: "gdpr"})

	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, int32(3), calls.Load())
}

func TestEvaluate_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := New(testSettings(srv.URL))
	require.NoError(t, err)

	_, err = client.Evaluate(context.Background(), testPages(), domain.Regulation{ID: "gdpr"})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	client, err := New(testSettings(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "remote", client.Name())
}
