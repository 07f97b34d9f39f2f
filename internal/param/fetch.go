package param

import "context"

// Fetcher resolves a named configuration value from wherever settings live.
type Fetcher interface {
	Fetch(context.Context, string) (string, error)
}
