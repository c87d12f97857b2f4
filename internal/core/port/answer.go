package port

import "context"

// QuestionAnswerer is the external text-generation capability used for
// profile Q&A. One request, one blocking response.
type QuestionAnswerer interface {
	Ask(ctx context.Context, profileData string, question string) (string, error)
}

type QAService interface {
	AskAboutProfile(ctx context.Context, code string, question string) (string, error)
}
