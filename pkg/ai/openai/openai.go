package openai

import (
	"sync"

	"sleuth/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// InvestigationOpenAIClient talks to OpenAI-compatible endpoints for the
// models used during evidence extraction and path labeling. It manages
// separate clients for embeddings and chat/completion tasks.
//
// An InvestigationOpenAIClient should be created using NewInvestigationOpenAIClient.
type InvestigationOpenAIClient struct {
	embeddingModel  string
	labelModel      string
	extractionModel string

	embeddingURL string
	embeddingKey string
	chatURL      string
	chatKey      string

	timeoutMin    int64
	embeddingLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient      *openai.Client
	EmbeddingClient *openai.Client
}

// NewInvestigationOpenAIClientParams defines the configuration parameters
// for creating a new InvestigationOpenAIClient.
//
// EmbeddingModel specifies the model used for embeddings.
// LabelModel specifies the model used for hypothesis labels.
// ExtractionModel specifies the model used for evidence extraction.
// EmbeddingURL and EmbeddingKey configure the embedding API endpoint.
// ChatURL and ChatKey configure the chat/completion API endpoint.
type NewInvestigationOpenAIClientParams struct {
	EmbeddingModel  string
	LabelModel      string
	ExtractionModel string

	EmbeddingURL string
	EmbeddingKey string
	ChatURL      string
	ChatKey      string

	RequestTimeoutMin     int64
	MaxConcurrentRequests int64
}

// NewInvestigationOpenAIClient creates and returns a new client configured
// with the provided parameters. It initializes separate OpenAI clients for
// embeddings and chat/completion tasks.
//
// Example:
//
//	params := openai.NewInvestigationOpenAIClientParams{
//		EmbeddingModel:  "text-embedding-3-small",
//		LabelModel:      "gpt-4o-mini",
//		ExtractionModel: "gpt-4o-mini",
//		ChatKey:         os.Getenv("OPENAI_API_KEY"),
//		EmbeddingKey:    os.Getenv("OPENAI_API_KEY"),
//	}
//	client := openai.NewInvestigationOpenAIClient(params)
func NewInvestigationOpenAIClient(
	params NewInvestigationOpenAIClientParams,
) *InvestigationOpenAIClient {
	chatClient := newOpenaiClient(params.ChatURL, params.ChatKey)
	embedClient := newOpenaiClient(params.EmbeddingURL, params.EmbeddingKey)

	timeoutMin := params.RequestTimeoutMin
	if timeoutMin <= 0 {
		timeoutMin = 5
	}
	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	return &InvestigationOpenAIClient{
		embeddingModel:  params.EmbeddingModel,
		labelModel:      params.LabelModel,
		extractionModel: params.ExtractionModel,

		chatURL:      params.ChatURL,
		chatKey:      params.ChatKey,
		embeddingURL: params.EmbeddingURL,
		embeddingKey: params.EmbeddingKey,

		timeoutMin:    timeoutMin,
		embeddingLock: semaphore.NewWeighted(maxConcurrent),

		metricsLock: sync.Mutex{},
		metrics: ai.ModelMetrics{
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			DurationMs:   0,
		},

		ChatClient:      chatClient,
		EmbeddingClient: embedClient,
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
