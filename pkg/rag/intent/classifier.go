package intent

import (
	"context"
	"encoding/json"
	"strings"

	"clinic-concierge-be/internal/pkg/logger"
	"clinic-concierge-be/pkg/llm"
	"clinic-concierge-be/pkg/rag/prompt"
)

// Intent categories for a public-facing clinic chatbot.
const (
	PatientCare = "patient_care"
	GeneralInfo = "general_info"
	InternalOps = "internal_ops"
)

// Classification is the ephemeral per-request result.
type Classification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Classifier maps sanitized user text to an intent category.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, logger logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify sends the sanitized text to the model in structured-output
// mode. A malformed response degrades to {general_info, 0.0}, which never
// triggers the refusal gate and lets routing proceed; a transport error is
// returned to the caller.
func (c *Classifier) Classify(ctx context.Context, sanitized string) (*Classification, error) {
	response, err := c.llmProvider.Generate(ctx, prompt.Intent(sanitized),
		llm.WithTemperature(0.0), llm.WithJSONOutput())
	if err != nil {
		return nil, err
	}

	result := parseClassification(response)
	c.logger.Debug("intent", "classified", map[string]interface{}{
		"intent":     result.Intent,
		"confidence": result.Confidence,
	})
	return result, nil
}

func parseClassification(response string) *Classification {
	fallback := &Classification{Intent: GeneralInfo, Confidence: 0.0}

	var out Classification
	if err := json.Unmarshal([]byte(extractJSON(response)), &out); err != nil {
		return fallback
	}

	switch out.Intent {
	case PatientCare, GeneralInfo, InternalOps:
	default:
		return fallback
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 1 {
		out.Confidence = 1
	}
	return &out
}

// extractJSON trims code fences and surrounding prose so the first JSON
// object in the response can be unmarshalled.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
