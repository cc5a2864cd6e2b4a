package platform

import (
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	LLMClient *openai.Client
	LLMModel  string
)

// GatewayTimeout bounds every outbound completion call. Once a call is
// issued there is no cancellation path; a client disconnect does not abort
// the upstream request.
const GatewayTimeout = 60 * time.Second

func InitLLMClient(config Config) {
	LLMModel = config.LLMModel
	// single attempt; the caller sees exactly one synchronous upstream call
	LLMClient = openai.NewClient(
		option.WithBaseURL(config.LLMBaseURL),
		option.WithAPIKey(config.LLMAPIKey),
		option.WithRequestTimeout(GatewayTimeout),
		option.WithMaxRetries(0),
	)
}
