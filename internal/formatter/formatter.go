// Package formatter turns normalized query results into natural language.
// Everything here is a pure function of its inputs; any failure in this
// package is a programming bug, not a runtime condition.
package formatter

import (
	"fmt"
	"strings"

	"github.com/Mohan777-G/metrics-whisperer-ai/internal/model"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/translator"
)

// Synthesize builds the answer sentence for a query result. An empty result
// always produces an explicit "no data" sentence; a numeric value is never
// fabricated.
func Synthesize(kind translator.Kind, result model.SeriesResult, promql string) string {
	if len(result.Samples) == 0 {
		return fmt.Sprintf("No data found for query %s. The system might still be collecting metrics or the query window may be too narrow.", promql)
	}

	if len(result.Samples) == 1 {
		return formatSingle(kind, result.Samples[0].Value)
	}
	return formatMultiple(result.Samples)
}

func formatSingle(kind translator.Kind, value float64) string {
	switch kind {
	case translator.KindCPU:
		return fmt.Sprintf("The CPU usage is currently %.2f%%.", value)
	case translator.KindMemory:
		gb := value / (1 << 30)
		return fmt.Sprintf("The memory usage is %.2f GB (%.0f bytes).", gb, value)
	case translator.KindRate:
		return fmt.Sprintf("The request rate is %.2f requests per second.", value)
	case translator.KindLatency:
		ms := value * 1000
		return fmt.Sprintf("The average response time is %.2f milliseconds.", ms)
	case translator.KindErrors:
		return fmt.Sprintf("The error rate is %.2f%%.", value*100)
	default:
		return fmt.Sprintf("The current value is %.2f.", value)
	}
}

// formatMultiple lists up to three samples by instance, and summarizes larger
// result sets with their average.
func formatMultiple(samples []model.Sample) string {
	if len(samples) <= 3 {
		parts := make([]string, 0, len(samples))
		for _, s := range samples {
			instance := s.Metric["instance"]
			if instance == "" {
				instance = "unknown"
			}
			parts = append(parts, fmt.Sprintf("%s: %.2f", instance, s.Value))
		}
		return fmt.Sprintf("Here are the values: %s.", strings.Join(parts, ", "))
	}

	var sum float64
	for _, s := range samples {
		sum += s.Value
	}
	avg := sum / float64(len(samples))
	return fmt.Sprintf("Found %d data points with an average value of %.2f.", len(samples), avg)
}
