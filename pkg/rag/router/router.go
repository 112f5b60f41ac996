package router

import (
	"context"
	"encoding/json"
	"strings"

	"clinic-concierge-be/internal/pkg/logger"
	"clinic-concierge-be/pkg/llm"
	"clinic-concierge-be/pkg/rag/prompt"
)

// Retrieval routes.
const (
	RouteSQL  = "sql"
	RouteDocs = "docs"
	RouteBoth = "both"
)

// Decision is the ephemeral route choice for one question.
type Decision struct {
	Route      string  `json:"route"`
	Confidence float64 `json:"confidence"`
}

// Router chooses the retrieval strategy for a sanitized question.
type Router struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewRouter(llmProvider llm.LLMProvider, logger logger.ILogger) *Router {
	return &Router{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Route never fails: a transport error or malformed model output degrades
// to the most inclusive strategy, {both, 0.0}, so retrieval still runs.
func (r *Router) Route(ctx context.Context, question string) *Decision {
	response, err := r.llmProvider.Generate(ctx, prompt.Router(question),
		llm.WithTemperature(0.0), llm.WithJSONOutput())
	if err != nil {
		r.logger.Warn("router", "route generation failed, defaulting to both", map[string]interface{}{
			"error": err.Error(),
		})
		return &Decision{Route: RouteBoth, Confidence: 0.0}
	}

	decision := ParseDecision(response)
	r.logger.Debug("router", "routed", map[string]interface{}{
		"route":      decision.Route,
		"confidence": decision.Confidence,
	})
	return decision
}

// ParseDecision parses the model's JSON. Anything malformed, including an
// unknown route value, yields {both, 0.0}.
func ParseDecision(response string) *Decision {
	fallback := &Decision{Route: RouteBoth, Confidence: 0.0}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return fallback
	}

	var out Decision
	if err := json.Unmarshal([]byte(response[start:end+1]), &out); err != nil {
		return fallback
	}

	switch out.Route {
	case RouteSQL, RouteDocs, RouteBoth:
	default:
		return fallback
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		out.Confidence = 0.0
	}
	return &out
}
