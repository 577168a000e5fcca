package driven

import "context"

// Translator generates text from a prompt using a generative-text
// backend. This is an optional service: when nil, translation is
// disabled and the pipeline publishes source-language artifacts only.
type Translator interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used. It is recorded
	// in the translation cache as the translator identity.
	ModelName() string

	// Close releases resources.
	Close() error
}
