package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Mohan777-G/metrics-whisperer-ai/internal/dto"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/metrics"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/model"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/prometheus"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/service"
	"github.com/Mohan777-G/metrics-whisperer-ai/internal/translator"
)

const unrecognizedHint = `I don't understand that query yet. Try rephrasing it, for example: "What's the average CPU usage?"`

type QueryController struct {
	answerService service.AnswerService
	store         prometheus.Client
	collectors    *metrics.Collectors
}

func NewQueryController(answerService service.AnswerService, store prometheus.Client, collectors *metrics.Collectors) *QueryController {
	return &QueryController{
		answerService: answerService,
		store:         store,
		collectors:    collectors,
	}
}

func RegisterQueryRoutes(router *gin.Engine, controller *QueryController) {
	router.GET("/", controller.Root)
	router.GET("/health", controller.Health)
	router.GET("/metrics", gin.WrapH(controller.collectors.Handler()))
	router.POST("/query", controller.HandleQuery)
}

// HandleQuery godoc
// @Summary      Answer a natural language metrics question
// @Description  Translates the question to PromQL with the rule set, executes it against Prometheus as an instant query, and returns a natural language answer, the raw series data, and a Grafana Explore deep link when configured.
// @Tags         query
// @Accept       json
// @Produce      json
// @Param        request body dto.QueryRequest true "Natural language question"
// @Success      200 {object} dto.QueryResponse "Answer with raw data and execution time"
// @Failure      400 {object} model.Response "Unrecognized question or query rejected by Prometheus"
// @Failure      503 {object} model.Response "Prometheus unreachable"
// @Failure      500 {object} model.Response "Internal server error"
// @Router       /query [post]
func (c *QueryController) HandleQuery(ctx *gin.Context) {
	var req dto.QueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid query request body")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error(), nil))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		ctx.JSON(http.StatusBadRequest, model.NewResponse("query must not be empty", nil))
		return
	}

	start := time.Now()
	resp, err := c.answerService.Answer(ctx.Request.Context(), req.Query)
	if err != nil {
		c.writeError(ctx, req.Query, err)
		return
	}

	c.collectors.RequestCount.WithLabelValues(http.MethodPost, "/query").Inc()
	c.collectors.RequestLatency.Observe(time.Since(start).Seconds())
	ctx.JSON(http.StatusOK, resp)
}

// writeError maps the pipeline error taxonomy onto status codes. The wording
// here is presentation; the classification comes from the typed errors.
func (c *QueryController) writeError(ctx *gin.Context, question string, err error) {
	switch {
	case errors.Is(err, translator.ErrUnrecognizedQuery):
		log.Info().Str("question", question).Msg("Unrecognized question")
		ctx.JSON(http.StatusBadRequest, model.NewResponse(unrecognizedHint, nil))
	case errors.Is(err, prometheus.ErrQueryFailed):
		log.Warn().Err(err).Str("question", question).Msg("Prometheus rejected the query")
		ctx.JSON(http.StatusBadRequest, model.NewResponse(err.Error(), nil))
	case errors.Is(err, prometheus.ErrUnavailable):
		log.Error().Err(err).Msg("Prometheus unreachable")
		ctx.JSON(http.StatusServiceUnavailable, model.NewResponse("Unable to connect to Prometheus server", nil))
	default:
		log.Error().Err(err).Str("question", question).Msg("Unexpected error processing query")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Internal server error", nil))
	}
}

// Root godoc
// @Summary      Liveness banner
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func (c *QueryController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message":   "metrics-whisperer is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health godoc
// @Summary      Deep health check
// @Description  Probes the Prometheus connection and reports healthy or degraded.
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /health [get]
func (c *QueryController) Health(ctx *gin.Context) {
	connected := c.store.Ready(ctx.Request.Context()) == nil

	status := "healthy"
	if !connected {
		status = "degraded"
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":               status,
		"prometheus_connected": connected,
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
	})
}
