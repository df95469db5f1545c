package gemini

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/Cyclone1070/devgate/internal/tool"
)

// toolGateway is the part of the gateway a session drives.
type toolGateway interface {
	Declarations() []tool.Declaration
	Instructions() string
	Dispatch(ctx context.Context, name string, params map[string]any) ([]tool.Content, error)
}

// Session is a conversation in which the model may call the gateway's
// tools. It keeps history between Ask calls and is not safe for concurrent
// use.
type Session struct {
	client   GeminiClient
	model    string
	gateway  toolGateway
	maxSteps int
	history  []*genai.Content
}

// NewSession creates a session. maxSteps bounds the model round trips of a
// single Ask.
func NewSession(client GeminiClient, model string, gateway toolGateway, maxSteps int) *Session {
	if client == nil {
		panic("client is required")
	}
	if gateway == nil {
		panic("gateway is required")
	}
	if maxSteps < 1 {
		panic("maxSteps must be >= 1")
	}
	return &Session{client: client, model: model, gateway: gateway, maxSteps: maxSteps}
}

// Ask sends prompt and runs requested tool calls until the model answers
// with text.
func (s *Session) Ask(ctx context.Context, prompt string) (string, error) {
	s.history = append(s.history, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	})

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(s.gateway.Instructions())},
		},
		Tools: toGeminiTools(s.gateway.Declarations()),
	}

	for step := 0; step < s.maxSteps; step++ {
		resp, err := s.client.GenerateContent(ctx, s.model, s.history, config)
		if err != nil {
			return "", mapGeminiError(err)
		}

		candidate, err := firstCandidate(resp)
		if err != nil {
			return "", err
		}
		s.history = append(s.history, candidate.Content)

		calls := functionCalls(candidate)
		if len(calls) == 0 {
			return candidateText(candidate), nil
		}

		var parts []*genai.Part
		for _, fc := range calls {
			logrus.WithFields(logrus.Fields{"tool": fc.Name, "step": step}).Debug("model requested tool")
			items, callErr := s.gateway.Dispatch(ctx, fc.Name, fc.Args)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			parts = append(parts, responseParts(fc, items, callErr)...)
		}
		s.history = append(s.history, &genai.Content{Role: "user", Parts: parts})
	}

	return "", &ProviderError{
		Code:    ErrorCodeTooManySteps,
		Message: fmt.Sprintf("no final answer after %d steps", s.maxSteps),
	}
}

// History returns the conversation so far.
func (s *Session) History() []*genai.Content {
	return append([]*genai.Content(nil), s.history...)
}

func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &ProviderError{
			Code:       ErrorCodeInvalidRequest,
			Message:    "empty response",
			Underlying: ErrNoCandidates,
		}
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &ProviderError{
			Code:    ErrorCodeContentBlocked,
			Message: "content blocked by safety filters",
		}
	}
	if candidate.Content == nil {
		candidate.Content = &genai.Content{Role: "model"}
	}
	return candidate, nil
}
