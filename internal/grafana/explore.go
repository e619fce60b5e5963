// Package grafana builds Explore deep links. The service never calls Grafana;
// it only knows the base URL and the query-string convention.
package grafana

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

type explorePayload struct {
	Range   exploreRange   `json:"range"`
	Queries []exploreQuery `json:"queries"`
}

type exploreRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type exploreQuery struct {
	Expr string `json:"expr"`
}

// ExploreURL returns a link that opens Grafana Explore pre-populated with the
// given PromQL and time range. An empty base URL returns "" and means "no
// deep link available", not an error.
func ExploreURL(base, promql, from, to string) string {
	if base == "" {
		return ""
	}

	payload := explorePayload{
		Range:   exploreRange{From: from, To: to},
		Queries: []exploreQuery{{Expr: promql}},
	}
	// Marshal of a plain struct of strings cannot fail.
	left, _ := json.Marshal(payload)

	return fmt.Sprintf("%s/explore?left=%s", strings.TrimRight(base, "/"), url.QueryEscape(string(left)))
}
