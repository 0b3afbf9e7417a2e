package planner

import (
	"encoding/json"
	"errors"
	"fmt"
)

// envelope is one recognised vendor response shape.
type envelope interface {
	text() (string, error)
}

// choiceMessage is shared by both shapes: choices[0].message.content.
type choiceMessage struct {
	Message *struct {
		Content *string `json:"content"`
	} `json:"message"`
}

// legacyEnvelope is the native DashScope shape:
// {"output": {"choices": [{"message": {"content": "..."}}]}}
type legacyEnvelope struct {
	Output *struct {
		Choices []choiceMessage `json:"choices"`
	} `json:"output"`
}

func (e legacyEnvelope) text() (string, error) {
	if e.Output == nil {
		return "", errors.New("missing output")
	}
	return firstContent(e.Output.Choices)
}

// compatibleEnvelope is the OpenAI-compatible shape:
// {"choices": [{"message": {"content": "..."}}]}
type compatibleEnvelope struct {
	Choices []choiceMessage `json:"choices"`
}

func (e compatibleEnvelope) text() (string, error) {
	return firstContent(e.Choices)
}

// malformedEnvelope stands for any body that is not one of the above.
type malformedEnvelope struct {
	cause error
}

func (e malformedEnvelope) text() (string, error) {
	return "", fmt.Errorf("malformed envelope: %w", e.cause)
}

func firstContent(choices []choiceMessage) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("missing choices")
	}
	msg := choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", errors.New("missing message content")
	}
	if *msg.Content == "" {
		return "", errors.New("empty message content")
	}
	return *msg.Content, nil
}

// decodeEnvelope picks the variant that matches the configured endpoint.
func decodeEnvelope(compatible bool, raw []byte) envelope {
	if compatible {
		var env compatibleEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return malformedEnvelope{cause: err}
		}
		return env
	}

	var env legacyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return malformedEnvelope{cause: err}
	}
	return env
}
