package dto

import "github.com/Mohan777-G/metrics-whisperer-ai/internal/model"

// QueryResponse is the unit returned to the presentation layer.
// ExecutionTime covers the Prometheus call only, in seconds.
type QueryResponse struct {
	NaturalLanguageResponse string             `json:"natural_language_response"`
	PromQLQuery             string             `json:"promql_query"`
	RawData                 model.SeriesResult `json:"raw_data"`
	GrafanaURL              *string            `json:"grafana_url,omitempty"`
	ExecutionTime           float64            `json:"execution_time"`
}
