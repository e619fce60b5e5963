package prometheus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Mohan777-G/metrics-whisperer-ai/config"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/model"
)

// Sentinel errors for Prometheus client failures. ErrQueryFailed means the
// store rejected the query (its message is carried in the wrapped error);
// ErrUnavailable means the store could not be reached at all.
var (
	ErrUnavailable = errors.New("prometheus unreachable")
	ErrQueryFailed = errors.New("prometheus query failed")
)

// Client is the interface for executing instant queries against Prometheus.
type Client interface {
	Query(ctx context.Context, promql string) (model.SeriesResult, error)
	Ready(ctx context.Context) error
}

// HTTPClient implements Client using the Prometheus HTTP API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(cfg *config.Config) Client {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.Prometheus.URL, "/"),
		client:  &http.Client{Timeout: cfg.Prometheus.QueryTimeout},
	}
}

// Query executes an instant query. The PromQL string is sent verbatim and the
// response envelope is normalized into a SeriesResult. Queries are never
// retried here; a retry policy, if any, belongs to the caller.
func (c *HTTPClient) Query(ctx context.Context, promql string) (model.SeriesResult, error) {
	params := url.Values{"query": {promql}}
	u := fmt.Sprintf("%s/api/v1/query?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.SeriesResult{}, fmt.Errorf("building request: %w", err)
	}

	log.Info().Str("promql", promql).Msg("Querying Prometheus")
	resp, err := c.client.Do(httpReq)
	if err != nil {
		// Connection refused, DNS failure, timeout and context cancellation
		// all mean the same thing to the caller: the store is unreachable.
		return model.SeriesResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return model.SeriesResult{}, fmt.Errorf("%w: status %d: undecodable response body", ErrQueryFailed, resp.StatusCode)
	}

	if env.Status != "success" {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return model.SeriesResult{}, fmt.Errorf("%w: %s", ErrQueryFailed, msg)
	}

	return normalize(env.Data)
}

// Ready probes the store with a trivial query.
func (c *HTTPClient) Ready(ctx context.Context) error {
	_, err := c.Query(ctx, "up")
	return err
}

// normalize flattens the Prometheus envelope into a SeriesResult. Sample
// values arrive as string-encoded floats and are parsed explicitly; a value
// that does not parse is a query failure, not a panic.
func normalize(data queryData) (model.SeriesResult, error) {
	result := model.SeriesResult{ResultType: data.ResultType}

	switch data.ResultType {
	case "scalar", "string":
		var value [2]interface{}
		if err := json.Unmarshal(data.Result, &value); err != nil {
			return model.SeriesResult{}, fmt.Errorf("%w: malformed scalar result: %v", ErrQueryFailed, err)
		}
		sample, err := parseSample(nil, value)
		if err != nil {
			return model.SeriesResult{}, err
		}
		result.Samples = []model.Sample{sample}
		return result, nil

	default: // "vector" and anything vector-shaped
		var items []vectorItem
		if err := json.Unmarshal(data.Result, &items); err != nil {
			return model.SeriesResult{}, fmt.Errorf("%w: malformed vector result: %v", ErrQueryFailed, err)
		}
		samples := make([]model.Sample, 0, len(items))
		for _, item := range items {
			sample, err := parseSample(item.Metric, item.Value)
			if err != nil {
				return model.SeriesResult{}, err
			}
			samples = append(samples, sample)
		}
		result.Samples = samples
		return result, nil
	}
}

func parseSample(metric map[string]string, value [2]interface{}) (model.Sample, error) {
	ts, ok := value[0].(float64)
	if !ok {
		return model.Sample{}, fmt.Errorf("%w: sample timestamp is not a number", ErrQueryFailed)
	}

	raw, ok := value[1].(string)
	if !ok {
		return model.Sample{}, fmt.Errorf("%w: sample value is not a string-encoded float", ErrQueryFailed)
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.Sample{}, fmt.Errorf("%w: malformed sample value %q", ErrQueryFailed, raw)
	}

	return model.Sample{Metric: metric, Value: parsed, Timestamp: ts}, nil
}

// --- Prometheus response types ---

type queryResponse struct {
	Status string    `json:"status"`
	Error  string    `json:"error"`
	Data   queryData `json:"data"`
}

type queryData struct {
	ResultType string          `json:"resultType"`
	Result     json.RawMessage `json:"result"`
}

type vectorItem struct {
	Metric map[string]string `json:"metric"`
	Value  [2]interface{}    `json:"value"`
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
