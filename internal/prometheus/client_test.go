package prometheus_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohan777-G/metrics-whisperer-ai/config"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/prometheus"
)

func newClient(url string, timeout time.Duration) prometheus.Client {
	cfg := &config.Config{}
	cfg.Prometheus.URL = url
	cfg.Prometheus.QueryTimeout = timeout
	return prometheus.NewHTTPClient(cfg)
}

func TestQuery_Vector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/query", r.URL.Path)
		assert.Equal(t, "avg(rate(cpu_usage_percent[5m]))", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"resultType": "vector",
				"result": [
					{"metric": {"instance": "web-1"}, "value": [1700000000.123, "45.2"]},
					{"metric": {"instance": "web-2"}, "value": [1700000000.123, "51.7"]}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newClient(server.URL, 5*time.Second)
	result, err := client.Query(context.Background(), "avg(rate(cpu_usage_percent[5m]))")
	require.NoError(t, err)

	assert.Equal(t, "vector", result.ResultType)
	require.Len(t, result.Samples, 2)
	assert.Equal(t, "web-1", result.Samples[0].Metric["instance"])
	assert.InDelta(t, 45.2, result.Samples[0].Value, 1e-9)
	assert.InDelta(t, 1700000000.123, result.Samples[0].Timestamp, 1e-6)
	assert.InDelta(t, 51.7, result.Samples[1].Value, 1e-9)
}

func TestQuery_Scalar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "data": {"resultType": "scalar", "result": [1700000000, "42"]}}`))
	}))
	defer server.Close()

	client := newClient(server.URL, 5*time.Second)
	result, err := client.Query(context.Background(), "scalar(up)")
	require.NoError(t, err)

	assert.Equal(t, "scalar", result.ResultType)
	require.Len(t, result.Samples, 1)
	assert.InDelta(t, 42, result.Samples[0].Value, 1e-9)
	assert.Nil(t, result.Samples[0].Metric)
}

func TestQuery_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "data": {"resultType": "vector", "result": []}}`))
	}))
	defer server.Close()

	client := newClient(server.URL, 5*time.Second)
	result, err := client.Query(context.Background(), "up")
	require.NoError(t, err)
	assert.Empty(t, result.Samples)
}

func TestQuery_StoreRejectsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": "error", "errorType": "bad_data", "error": "parse error: unexpected identifier"}`))
	}))
	defer server.Close()

	client := newClient(server.URL, 5*time.Second)
	_, err := client.Query(context.Background(), "this is not promql")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prometheus.ErrQueryFailed))
	assert.Contains(t, err.Error(), "parse error: unexpected identifier")
	assert.False(t, errors.Is(err, prometheus.ErrUnavailable))
}

func TestQuery_MalformedValue(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "Value Not A Float",
			body: `{"status": "success", "data": {"resultType": "vector", "result": [{"metric": {}, "value": [1700000000, "not-a-number"]}]}}`,
		},
		{
			name: "Value Not A String",
			body: `{"status": "success", "data": {"resultType": "vector", "result": [{"metric": {}, "value": [1700000000, 45.2]}]}}`,
		},
		{
			name: "Result Not An Array",
			body: `{"status": "success", "data": {"resultType": "vector", "result": {"oops": true}}}`,
		},
		{
			name: "Body Not JSON",
			body: `<html>gateway error</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newClient(server.URL, 5*time.Second)
			_, err := client.Query(context.Background(), "up")
			require.Error(t, err)
			assert.True(t, errors.Is(err, prometheus.ErrQueryFailed))
		})
	}
}

func TestQuery_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Nothing listening anymore

	client := newClient(server.URL, 1*time.Second)
	_, err := client.Query(context.Background(), "up")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prometheus.ErrUnavailable))
}

func TestQuery_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := newClient(server.URL, 50*time.Millisecond)
	_, err := client.Query(context.Background(), "up")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prometheus.ErrUnavailable))
}

func TestQuery_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newClient(server.URL, 5*time.Second)
	_, err := client.Query(ctx, "up")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prometheus.ErrUnavailable))
}

func TestReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "up", r.URL.Query().Get("query"))
		w.Write([]byte(`{"status": "success", "data": {"resultType": "vector", "result": []}}`))
	}))
	defer server.Close()

	client := newClient(server.URL, 5*time.Second)
	assert.NoError(t, client.Ready(context.Background()))

	server.Close()
	assert.Error(t, client.Ready(context.Background()))
}
