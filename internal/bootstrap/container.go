package bootstrap

import (
	"gorm.io/gorm"

	"clinic-concierge-be/internal/config"
	"clinic-concierge-be/internal/controller"
	"clinic-concierge-be/internal/pkg/logger"
	"clinic-concierge-be/internal/repository/implementation"
	"clinic-concierge-be/pkg/embedding"
	embeddingopenai "clinic-concierge-be/pkg/embedding/openai"
	"clinic-concierge-be/pkg/llm"
	llmopenai "clinic-concierge-be/pkg/llm/openai"
	"clinic-concierge-be/pkg/pii"
	"clinic-concierge-be/pkg/rag/pipeline"
	"clinic-concierge-be/pkg/rag/session"
)

type Container struct {
	ChatController controller.IChatController
	Pipeline       *pipeline.Pipeline
	Logger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	structuredRepo := implementation.NewStructuredRepository(db)
	chunkRepo := implementation.NewDocumentChunkRepository(db)

	sessions := session.NewStore(cfg.Pipeline.SessionTTLHours)
	redactor := pii.NewRedactor()

	factory := func(apiKey string) (llm.LLMProvider, embedding.EmbeddingProvider) {
		return llmopenai.NewOpenAIProvider(apiKey, cfg.OpenAI.ChatModel),
			embeddingopenai.NewOpenAIProvider(apiKey, cfg.OpenAI.EmbedModel)
	}

	p := pipeline.New(
		pipeline.Config{
			TopK:        cfg.Pipeline.RetrievalTopK,
			RowLimit:    cfg.Pipeline.SQLRowLimit,
			BookingBase: cfg.Pipeline.BookingBase,
		},
		redactor,
		sessions,
		structuredRepo,
		chunkRepo,
		factory,
		sysLogger,
	)

	chatController := controller.NewChatController(p, cfg.Pipeline.RequestTimeoutSeconds)

	return &Container{
		ChatController: chatController,
		Pipeline:       p,
		Logger:         sysLogger,
	}
}
