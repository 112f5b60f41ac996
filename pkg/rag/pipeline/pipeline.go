package pipeline

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"clinic-concierge-be/internal/pkg/logger"
	"clinic-concierge-be/internal/repository/contract"
	"clinic-concierge-be/pkg/embedding"
	"clinic-concierge-be/pkg/llm"
	"clinic-concierge-be/pkg/pii"
	"clinic-concierge-be/pkg/rag"
	"clinic-concierge-be/pkg/rag/intent"
	"clinic-concierge-be/pkg/rag/prompt"
	"clinic-concierge-be/pkg/rag/response"
	"clinic-concierge-be/pkg/rag/retrieval"
	"clinic-concierge-be/pkg/rag/router"
	"clinic-concierge-be/pkg/rag/session"
	"clinic-concierge-be/pkg/rag/structured"
)

var (
	// ErrNotReady means no working credential has been installed yet.
	ErrNotReady = errors.New("no API credential configured")
	// ErrInvalidSession means the session id fails validation.
	ErrInvalidSession = errors.New("invalid session id")
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// confidenceThreshold gates both the internal-ops refusal and the
// single-branch routing shortcut.
const confidenceThreshold = 0.6

// ProviderFactory builds the model providers for a candidate credential.
// Swappable in tests.
type ProviderFactory func(apiKey string) (llm.LLMProvider, embedding.EmbeddingProvider)

// Config carries the tunables the pipeline needs at build time.
type Config struct {
	TopK        int
	RowLimit    int
	BookingBase string
}

// Result is a completed chat turn.
type Result struct {
	Reply    string `json:"reply"`
	Language string `json:"language"`
}

// capabilities is the full set of model-backed components built from one
// credential. It is replaced as a unit so a turn never mixes providers
// from different credentials.
type capabilities struct {
	classifier *intent.Classifier
	router     *router.Router
	executor   *structured.Executor
	retriever  *retrieval.Retriever
	generator  *response.Generator
}

// Pipeline is the chat orchestrator: language detection, inbound
// sanitization, intent gating, routing, retrieval, generation, and
// outbound redaction.
type Pipeline struct {
	cfg            Config
	redactor       *pii.Redactor
	sessions       *session.Store
	structuredRepo contract.StructuredRepository
	chunkRepo      contract.DocumentChunkRepository
	factory        ProviderFactory
	logger         logger.ILogger

	// rotateMu serializes whole credential rebuilds; mu guards the
	// snapshot pointer readers take.
	rotateMu sync.Mutex
	mu       sync.RWMutex
	caps     *capabilities
}

func New(cfg Config, redactor *pii.Redactor, sessions *session.Store, structuredRepo contract.StructuredRepository, chunkRepo contract.DocumentChunkRepository, factory ProviderFactory, logger logger.ILogger) *Pipeline {
	return &Pipeline{
		cfg:            cfg,
		redactor:       redactor,
		sessions:       sessions,
		structuredRepo: structuredRepo,
		chunkRepo:      chunkRepo,
		factory:        factory,
		logger:         logger,
	}
}

// IsReady reports whether a working credential is installed.
func (p *Pipeline) IsReady() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.caps != nil
}

// SetCredential probes the given key with a minimal embedding call and,
// only on success, swaps in a fresh set of capabilities. A failed probe
// leaves the current capabilities untouched.
func (p *Pipeline) SetCredential(ctx context.Context, apiKey string) bool {
	p.rotateMu.Lock()
	defer p.rotateMu.Unlock()

	llmProvider, embedder := p.factory(apiKey)

	if err := embedder.Probe(ctx); err != nil {
		p.logger.Warn("pipeline", "credential probe failed", map[string]interface{}{"error": err.Error()})
		return false
	}

	caps := &capabilities{
		classifier: intent.NewClassifier(llmProvider, p.logger),
		router:     router.NewRouter(llmProvider, p.logger),
		executor:   structured.NewExecutor(llmProvider, p.structuredRepo, p.cfg.RowLimit, p.logger),
		retriever:  retrieval.NewRetriever(embedder, p.chunkRepo, p.cfg.TopK, p.logger),
		generator:  response.NewGenerator(llmProvider, p.structuredRepo, p.sessions, p.cfg.BookingBase, p.logger),
	}

	p.mu.Lock()
	p.caps = caps
	p.mu.Unlock()

	p.logger.Info("pipeline", "credential installed", nil)
	return true
}

// Answer runs one chat turn. The raw question never reaches a model:
// every model call sees the sanitized form, and the reply is redacted
// again on the way out.
func (p *Pipeline) Answer(ctx context.Context, question, sessionID string) (*Result, error) {
	p.mu.RLock()
	caps := p.caps
	p.mu.RUnlock()
	if caps == nil {
		return nil, ErrNotReady
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return nil, ErrInvalidSession
	}

	lang := pii.DetectLanguage(question)
	sanitized, _ := p.redactor.SanitizeForLLM(question, lang)

	classification, err := caps.classifier.Classify(ctx, sanitized)
	if err != nil {
		return nil, err
	}
	if classification.Intent == intent.InternalOps && classification.Confidence >= confidenceThreshold {
		p.logger.Info("pipeline", "internal-ops question refused", map[string]interface{}{
			"confidence": classification.Confidence,
		})
		return &Result{Reply: prompt.RefusalFor(lang), Language: lang}, nil
	}

	decision := caps.router.Route(ctx, sanitized)
	results := p.retrieve(ctx, caps, decision, sanitized)
	contextText := rag.BuildContext(results)

	targetLang := "en"
	if strings.HasPrefix(lang, "zh") {
		targetLang = "zh-Hant"
	}

	answer, err := caps.generator.Generate(ctx, sanitized, contextText, targetLang, sessionID)
	if err != nil {
		return nil, err
	}

	redacted := p.redactor.RedactBeforeReturn(answer, lang)
	return &Result{Reply: redacted, Language: lang}, nil
}

// retrieve runs the branches the routing decision asks for. A confident
// single-branch decision skips the other branch; anything else runs both
// concurrently.
func (p *Pipeline) retrieve(ctx context.Context, caps *capabilities, decision *router.Decision, question string) rag.Retrieval {
	var results rag.Retrieval

	if decision.Confidence >= confidenceThreshold {
		switch decision.Route {
		case router.RouteSQL:
			results.SQL = caps.executor.Run(ctx, question)
			return results
		case router.RouteDocs:
			results.Docs = caps.retriever.Run(ctx, question)
			return results
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results.SQL = caps.executor.Run(ctx, question)
	}()
	go func() {
		defer wg.Done()
		results.Docs = caps.retriever.Run(ctx, question)
	}()
	wg.Wait()
	return results
}

// ResetSession discards the conversation history for the session.
func (p *Pipeline) ResetSession(sessionID string) error {
	if !sessionIDPattern.MatchString(sessionID) {
		return ErrInvalidSession
	}
	p.sessions.Reset(sessionID)
	return nil
}
