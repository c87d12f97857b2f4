package ai

import (
	"context"
	"errors"

	"mygene/internal/core/port"
)

var ErrAnswererDisabled = errors.New("question answering is not configured")

type disabledAnswerer struct{}

// NewDisabledAnswerer stands in when no Gemini API key is configured. Every
// question fails with ErrAnswererDisabled instead of taking the server down.
func NewDisabledAnswerer() port.QuestionAnswerer {
	return disabledAnswerer{}
}

func (disabledAnswerer) Ask(ctx context.Context, profileData string, question string) (string, error) {
	return "", ErrAnswererDisabled
}
