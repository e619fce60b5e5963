package translator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasttemplate"

	"github.com/Mohan777-G/metrics-whisperer-ai/config"
)

// ErrUnrecognizedQuery is returned when no rule matches the question. The
// wrapped message carries the original question text so the caller can show
// it back to the user.
var ErrUnrecognizedQuery = errors.New("unrecognized query")

// Kind classifies a translated query for phrasing and panel selection only.
// It has no effect on execution.
type Kind string

const (
	KindCPU          Kind = "cpu"
	KindMemory       Kind = "memory"
	KindRate         Kind = "rate"
	KindLatency      Kind = "latency"
	KindErrors       Kind = "errors"
	KindAvailability Kind = "availability"
	KindUnknown      Kind = "unknown"
)

// Translator maps natural language questions to PromQL using an ordered rule
// set with a first-match policy. It holds no per-request state.
type Translator struct {
	rules  []Rule
	window string
}

func New(cfg *config.Config) (*Translator, error) {
	rules := DefaultRules()
	if cfg.Translator.RulesFile != "" {
		loaded, err := LoadRules(cfg.Translator.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("loading rules from %s: %w", cfg.Translator.RulesFile, err)
		}
		rules = loaded
		log.Info().Str("file", cfg.Translator.RulesFile).Int("rules", len(rules)).Msg("Loaded translation rules from file")
	}
	return &Translator{
		rules:  rules,
		window: cfg.Translator.DefaultWindow,
	}, nil
}

// Translate returns the PromQL expression and kind of the first rule whose
// pattern matches the question. Rules are tested in declaration order, so
// more specific phrasings ("average cpu") must be declared before general
// ones ("cpu usage").
func (t *Translator) Translate(question string) (string, Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(question))

	for _, rule := range t.rules {
		if rule.Pattern.MatchString(normalized) {
			promql := fasttemplate.ExecuteString(rule.Template, "{{", "}}", map[string]interface{}{
				"window": t.window,
			})
			log.Info().Str("pattern", rule.Pattern.String()).Str("promql", promql).Msg("Matched translation rule")
			return promql, rule.Kind, nil
		}
	}

	log.Warn().Str("question", question).Msg("No translation rule matched")
	return "", KindUnknown, fmt.Errorf("%w: %q", ErrUnrecognizedQuery, question)
}
