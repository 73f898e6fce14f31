package port

import "context"

// CompletionInput carries the prompt sent to a completion model.
type CompletionInput struct {
	Prompt string
}

// CompletionOutput is the free-text answer of a completion model.
type CompletionOutput struct {
	Text      string
	ModelUsed string
}

// CompletionOracle abstracts a generative text-completion model.
type CompletionOracle interface {
	Complete(ctx context.Context, input CompletionInput) (*CompletionOutput, error)
}
