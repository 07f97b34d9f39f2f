package invoke

import "context"

// Invoker runs a single model inference and returns the raw response envelope.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, body []byte) ([]byte, error)
}
