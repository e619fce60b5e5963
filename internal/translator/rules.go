package translator

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule pairs a pattern over the lowercased question with a PromQL template.
// The template may reference {{window}}, substituted with the configured
// default time window.
type Rule struct {
	Pattern  *regexp.Regexp
	Template string
	Kind     Kind
}

// DefaultRules is the compiled-in rule set. Declaration order is the match
// order: aggregate phrasings come before the plain metric phrasings they
// overlap with.
func DefaultRules() []Rule {
	return []Rule{
		// CPU
		{regexp.MustCompile(`average cpu|mean cpu`), "avg(rate(cpu_usage_percent[{{window}}]))", KindCPU},
		{regexp.MustCompile(`max cpu|maximum cpu|peak cpu`), "max(rate(cpu_usage_percent[{{window}}]))", KindCPU},
		{regexp.MustCompile(`cpu usage|cpu utilization`), "rate(cpu_usage_percent[{{window}}])", KindCPU},

		// Memory
		{regexp.MustCompile(`average memory`), "avg(memory_usage_bytes)", KindMemory},
		{regexp.MustCompile(`memory consumption`), "rate(memory_usage_bytes[{{window}}])", KindMemory},
		{regexp.MustCompile(`memory usage|memory utilization`), "memory_usage_bytes", KindMemory},

		// Requests
		{regexp.MustCompile(`request rate|requests per second`), "rate(http_requests_total[{{window}}])", KindRate},
		{regexp.MustCompile(`request count|total requests`), "sum(http_requests_total)", KindRate},

		// Latency
		{regexp.MustCompile(`average latency|average response time`), "avg(rate(http_request_duration_seconds[{{window}}]))", KindLatency},
		{regexp.MustCompile(`request latency|response time`), "rate(http_request_duration_seconds[{{window}}])", KindLatency},

		// Errors
		{regexp.MustCompile(`4xx errors`), `rate(http_requests_total{status=~"4.."}[{{window}}])`, KindErrors},
		{regexp.MustCompile(`5xx errors`), `rate(http_requests_total{status=~"5.."}[{{window}}])`, KindErrors},
		{regexp.MustCompile(`error rate|errors`), `rate(http_requests_total{status=~"5.."}[{{window}}])`, KindErrors},

		// General
		{regexp.MustCompile(`availability|uptime`), "up", KindAvailability},
		{regexp.MustCompile(`disk usage`), "disk_usage_bytes", KindUnknown},
		{regexp.MustCompile(`network traffic`), "rate(network_bytes_total[{{window}}])", KindUnknown},
	}
}

type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Pattern  string `yaml:"pattern"`
	Template string `yaml:"template"`
	Kind     string `yaml:"kind"`
}

// LoadRules reads an ordered rule set from a YAML file. File order is match
// order, same as DefaultRules.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rule file: %w", err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rule file contains no rules")
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for i, spec := range rf.Rules {
		if spec.Pattern == "" || spec.Template == "" {
			return nil, fmt.Errorf("rule %d: pattern and template are required", i)
		}
		pattern, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: invalid pattern %q: %w", i, spec.Pattern, err)
		}
		kind := Kind(spec.Kind)
		if kind == "" {
			kind = KindUnknown
		}
		rules = append(rules, Rule{Pattern: pattern, Template: spec.Template, Kind: kind})
	}
	return rules, nil
}
