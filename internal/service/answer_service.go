package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Mohan777-G/metrics-whisperer-ai/config"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/dto"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/formatter"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/grafana"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/prometheus"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/translator"
)

// AnswerService runs the full question pipeline: translate, execute,
// synthesize. It holds no per-request state.
type AnswerService interface {
	Answer(ctx context.Context, question string) (*dto.QueryResponse, error)
}

type answerService struct {
	translator *translator.Translator
	store      prometheus.Client
	grafanaURL string
	rangeFrom  string
	rangeTo    string
}

func NewAnswerService(cfg *config.Config, tr *translator.Translator, store prometheus.Client) AnswerService {
	return &answerService{
		translator: tr,
		store:      store,
		grafanaURL: cfg.Grafana.URL,
		rangeFrom:  cfg.Grafana.RangeFrom,
		rangeTo:    cfg.Grafana.RangeTo,
	}
}

// Answer translates the question, executes the resulting PromQL and builds
// the response. ExecutionTime measures the store call only. Translation and
// store errors propagate typed; they are never downgraded to an empty answer.
func (s *answerService) Answer(ctx context.Context, question string) (*dto.QueryResponse, error) {
	promql, kind, err := s.translator.Translate(question)
	if err != nil {
		return nil, err
	}
	log.Info().Str("question", question).Str("promql", promql).Str("kind", string(kind)).Msg("Translated question")

	start := time.Now()
	result, err := s.store.Query(ctx, promql)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start).Seconds()

	sentence := formatter.Synthesize(kind, result, promql)

	resp := &dto.QueryResponse{
		NaturalLanguageResponse: sentence,
		PromQLQuery:             promql,
		RawData:                 result,
		ExecutionTime:           elapsed,
	}

	if u := grafana.ExploreURL(s.grafanaURL, promql, s.rangeFrom, s.rangeTo); u != "" {
		resp.GrafanaURL = &u
		resp.NaturalLanguageResponse = sentence + " You can visualize this data at: " + u
	}

	return resp, nil
}
