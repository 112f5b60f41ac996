package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-concierge-be/internal/model"
	"clinic-concierge-be/internal/pkg/serverutils"
	"clinic-concierge-be/internal/repository/contract"
	"clinic-concierge-be/pkg/embedding"
	"clinic-concierge-be/pkg/llm"
	"clinic-concierge-be/pkg/pii"
	"clinic-concierge-be/pkg/rag/pipeline"
	"clinic-concierge-be/pkg/rag/session"
)

type fakeLLM struct {
	chatReply string
	chatErr   error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.chatReply, f.chatErr
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	switch {
	case strings.Contains(prompt, `{"intent":"...","confidence":0.0}`):
		return `{"intent":"patient_care","confidence":0.9}`, nil
	case strings.Contains(prompt, `{"route":"...","confidence":0.0}`):
		return `{"route":"docs","confidence":0.9}`, nil
	default:
		return "", nil
	}
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1}, nil
}

func (f *fakeEmbedder) Probe(ctx context.Context) error {
	_, err := f.Embed(ctx, "ok")
	return err
}

type fakeStructuredRepo struct{}

func (fakeStructuredRepo) ExecSelect(ctx context.Context, query string) (*contract.ResultSet, error) {
	return nil, errors.New("not used")
}

func (fakeStructuredRepo) FallbackConsultationPricing(ctx context.Context) (*contract.ResultSet, string, error) {
	return nil, "", errors.New("not used")
}

func (fakeStructuredRepo) LatestBookingLink(ctx context.Context) (string, error) {
	return "", nil
}

type fakeChunkRepo struct{}

func (fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChunk, error) {
	return nil, nil
}

func (fakeChunkRepo) ReplaceBySourceId(ctx context.Context, sourceId string, chunks []*model.DocumentChunk) error {
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestApp(t *testing.T, mockLLM *fakeLLM, mockEmbedder *fakeEmbedder) (*fiber.App, *pipeline.Pipeline) {
	t.Helper()

	factory := func(apiKey string) (llm.LLMProvider, embedding.EmbeddingProvider) {
		return mockLLM, mockEmbedder
	}
	p := pipeline.New(
		pipeline.Config{TopK: 4, RowLimit: 5},
		pii.NewRedactor(),
		session.NewStore(12),
		fakeStructuredRepo{},
		fakeChunkRepo{},
		factory,
		noopLogger{},
	)

	ctrl := NewChatController(p, 60)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	app.Get("/health", ctrl.Health)
	app.Get("/ready", ctrl.Ready)
	ctrl.RegisterRoutes(app.Group("/api"))

	return app, p
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestChatBeforeCredential(t *testing.T) {
	app, _ := newTestApp(t, &fakeLLM{chatReply: "hi"}, &fakeEmbedder{})

	status, body := postJSON(t, app, "/api/chat/v1", fiber.Map{
		"message":    "hello",
		"session_id": "sess-1",
	})

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
}

func TestSetApiKeyAndChat(t *testing.T) {
	app, _ := newTestApp(t, &fakeLLM{chatReply: "We open at 9am."}, &fakeEmbedder{})

	status, _ := postJSON(t, app, "/api/chat/v1/set-api-key", fiber.Map{"api_key": "sk-test"})
	require.Equal(t, fiber.StatusOK, status)

	status, body := postJSON(t, app, "/api/chat/v1", fiber.Map{
		"message":    "when do you open",
		"session_id": "sess-1",
	})

	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "We open at 9am.", data["reply"])
	assert.Equal(t, "en", data["language"])
	assert.Equal(t, "sess-1", data["session_id"])
}

func TestSetApiKeyProbeFailure(t *testing.T) {
	app, p := newTestApp(t, &fakeLLM{}, &fakeEmbedder{err: errors.New("401")})

	status, body := postJSON(t, app, "/api/chat/v1/set-api-key", fiber.Map{"api_key": "sk-bad"})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.False(t, p.IsReady())
}

func TestChatValidation(t *testing.T) {
	app, _ := newTestApp(t, &fakeLLM{chatReply: "hi"}, &fakeEmbedder{})

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing message", fiber.Map{"session_id": "sess-1"}},
		{"missing session", fiber.Map{"message": "hello"}},
		{"empty message", fiber.Map{"message": "", "session_id": "sess-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := postJSON(t, app, "/api/chat/v1", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
		})
	}
}

func TestChatGenerationFailure(t *testing.T) {
	mockLLM := &fakeLLM{chatErr: errors.New("rate limited")}
	app, _ := newTestApp(t, mockLLM, &fakeEmbedder{})

	status, _ := postJSON(t, app, "/api/chat/v1/set-api-key", fiber.Map{"api_key": "sk-test"})
	require.Equal(t, fiber.StatusOK, status)

	status, body := postJSON(t, app, "/api/chat/v1", fiber.Map{
		"message":    "hello",
		"session_id": "sess-1",
	})

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, false, body["success"])
}

func TestResetSession(t *testing.T) {
	app, _ := newTestApp(t, &fakeLLM{chatReply: "hi"}, &fakeEmbedder{})

	status, _ := postJSON(t, app, "/api/chat/v1/set-api-key", fiber.Map{"api_key": "sk-test"})
	require.Equal(t, fiber.StatusOK, status)

	status, body := postJSON(t, app, "/api/chat/v1/reset-session", fiber.Map{"session_id": "sess-1"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _ = postJSON(t, app, "/api/chat/v1/reset-session", fiber.Map{"session_id": "bad id!"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHealthAndReady(t *testing.T) {
	app, _ := newTestApp(t, &fakeLLM{chatReply: "hi"}, &fakeEmbedder{})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/ready", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	status, _ := postJSON(t, app, "/api/chat/v1/set-api-key", fiber.Map{"api_key": "sk-test"})
	require.Equal(t, fiber.StatusOK, status)

	resp, err = app.Test(httptest.NewRequest("GET", "/ready", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
