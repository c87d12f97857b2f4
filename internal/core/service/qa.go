package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mygene/internal/core/domain"
	"mygene/internal/core/port"
)

const (
	notSpecified = "Not specified"
	notAvailable = "Not available"
)

type QAService struct {
	profiles port.ProfileRepository
	answerer port.QuestionAnswerer
}

func NewQAService(profiles port.ProfileRepository, answerer port.QuestionAnswerer) *QAService {
	return &QAService{
		profiles: profiles,
		answerer: answerer,
	}
}

// AskAboutProfile flattens the profile's fields into a text block and relays
// it with the question to the generation capability. The answer comes back
// verbatim. No retries and no caching.
func (qs *QAService) AskAboutProfile(ctx context.Context, code string, question string) (string, error) {
	profile, err := qs.profiles.GetByCode(ctx, code)

	if err != nil {
		return "", err
	}

	answer, err := qs.answerer.Ask(ctx, SerializeProfile(profile), question)

	if err != nil {
		slog.Error("QA#AskAboutProfile", "error", err, "code", code)
		return "", fmt.Errorf("question answering failed: %w", err)
	}

	return answer, nil
}

// SerializeProfile renders the profile as "Label: value" lines in a fixed
// order. Absent optional fields get a placeholder so the model knows the
// field exists but was not filled.
func SerializeProfile(p domain.Profile) string {
	lines := []string{
		"Name: " + p.Name,
		"Birth Date: " + p.BirthDate.Format(time.RFC3339),
		"Death Date: " + p.DeathDate.Format(time.RFC3339),
		"Family Details: " + p.FamilyDetails,
		"Religion: " + orPlaceholder(p.Religion, notSpecified),
		"Education: " + orPlaceholder(p.Education, notSpecified),
		"Occupation: " + orPlaceholder(p.Occupation, notSpecified),
		"Burial Information: " + p.BurialInfo,
		"Image URL: " + orPlaceholder(p.ImageURL, notAvailable),
	}

	return strings.Join(lines, "\n")
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}

	return value
}
