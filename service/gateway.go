package service

import (
	"context"
	"errors"
	"fmt"

	"safai/lib"
	"safai/platform"

	"github.com/openai/openai-go"
)

var logger = platform.Logger

// Completion is the gateway result. When the upstream answers with an error
// envelope the message is folded into Text as "Error: ..." and UpstreamErr
// is set, so callers get the original lenient behavior at the boundary but
// can still tell an envelope from ordinary assistant content.
type Completion struct {
	Text        string
	UpstreamErr bool
}

type GatewayService struct {
}

// Complete performs one synchronous chat-completion call with the
// process-wide client and model. The client carries the 60 second request
// timeout; exceeding it surfaces as lib.ErrGatewayTimeout.
func (g *GatewayService) Complete(ctx context.Context, messages []ChatMessage) (*Completion, error) {
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{}),
		Model:    openai.F(platform.LLMModel),
	}
	for _, message := range messages {
		var content any = message.Content
		params.Messages.Value = append(params.Messages.Value, openai.ChatCompletionMessageParam{
			Role:    openai.F(openai.ChatCompletionMessageParamRole(message.Role)),
			Content: openai.F(content),
		})
	}

	completion, err := platform.LLMClient.Chat.Completions.New(ctx, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("completion call timed out: %w", lib.ErrGatewayTimeout)
		}
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			message := apierr.Message
			if message == "" {
				message = "Unknown error"
			}
			return &Completion{Text: "Error: " + message, UpstreamErr: true}, nil
		}
		return nil, fmt.Errorf("completion call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("completion response has no choices")
	}
	return &Completion{Text: completion.Choices[0].Message.Content}, nil
}
