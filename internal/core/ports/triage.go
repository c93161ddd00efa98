package ports

import "context"

// Triager asks a language model to rank and annotate the open task list.
// It has no write access to the task model.
//
//go:generate mockgen -source=triage.go -destination=mocks/mock_triage.go -package=mocks
type Triager interface {
	// Complete sends a prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (string, error)
}
