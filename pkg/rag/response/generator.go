package response

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"clinic-concierge-be/internal/pkg/logger"
	"clinic-concierge-be/internal/repository/contract"
	"clinic-concierge-be/pkg/llm"
	"clinic-concierge-be/pkg/rag/prompt"
	"clinic-concierge-be/pkg/rag/session"
)

// ErrGeneration marks a failure of the final answer call, as opposed to
// the recoverable retrieval-branch failures.
var ErrGeneration = errors.New("answer generation failed")

// Generator produces the final grounded answer from assembled context and
// per-session history, and records the exchange in the session store.
type Generator struct {
	llmProvider    llm.LLMProvider
	structuredRepo contract.StructuredRepository
	sessions       *session.Store
	bookingBase    string
	logger         logger.ILogger
}

func NewGenerator(llmProvider llm.LLMProvider, structuredRepo contract.StructuredRepository, sessions *session.Store, bookingBase string, logger logger.ILogger) *Generator {
	return &Generator{
		llmProvider:    llmProvider,
		structuredRepo: structuredRepo,
		sessions:       sessions,
		bookingBase:    bookingBase,
		logger:         logger,
	}
}

// Generate asks the model for an answer in targetLang grounded in
// contextText. The session is only updated when generation succeeds.
func (g *Generator) Generate(ctx context.Context, question, contextText, targetLang, sessionID string) (string, error) {
	history := g.sessions.History(sessionID)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: prompt.GenerationSystem(targetLang),
	})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: prompt.GenerationUser(g.resolveBookingBase(ctx), contextText, question),
	})

	answer, err := g.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	g.sessions.Append(sessionID,
		llm.Message{Role: llm.RoleUser, Content: question},
		llm.Message{Role: llm.RoleAssistant, Content: answer},
	)
	return answer, nil
}

// resolveBookingBase derives the booking site origin from the clinic's
// stored booking link, falling back to the configured base.
func (g *Generator) resolveBookingBase(ctx context.Context) string {
	link, err := g.structuredRepo.LatestBookingLink(ctx)
	if err != nil || strings.TrimSpace(link) == "" {
		return g.bookingBase
	}
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return g.bookingBase
	}
	return u.Scheme + "://" + u.Host
}
