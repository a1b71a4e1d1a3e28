package core

import "context"

// CompleteOptions are the sampling parameters for a completion call.
type CompleteOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// DefaultCompleteOptions returns the parameters used for every agent
// call: deterministic sampling, bounded output.
func DefaultCompleteOptions() CompleteOptions {
	return CompleteOptions{Temperature: 0, TopP: 0.8, MaxTokens: 2000}
}

// Completer is the text-completion service. An empty returned string is
// a failure signal and must never be treated as valid content.
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts CompleteOptions) (string, error)
}

// Embedder encodes text for retrieval. Query and passage encodings may
// differ (asymmetric models prefix the input).
type Embedder interface {
	EncodeQuery(ctx context.Context, text string) ([]float32, error)
	EncodePassage(ctx context.Context, text string) ([]float32, error)
}

// SearchMatch is one retrieved passage.
type SearchMatch struct {
	Text  string
	Score float32
}

// VectorSearch is the nearest-neighbor index over the knowledge base.
type VectorSearch interface {
	Query(ctx context.Context, vector []float32, topK int, namespace string) ([]SearchMatch, error)
}
