package model

// Sample is one data point returned by Prometheus: an optional label set plus
// a numeric value. Prometheus encodes the value as a string on the wire; by
// the time a Sample exists the value has already been parsed.
type Sample struct {
	Metric    map[string]string `json:"metric,omitempty"`
	Value     float64           `json:"value"`
	Timestamp float64           `json:"timestamp"`
}

// SeriesResult is the normalized result of an instant query. Samples may be
// empty when the query matched no series.
type SeriesResult struct {
	ResultType string   `json:"resultType"`
	Samples    []Sample `json:"result"`
}
