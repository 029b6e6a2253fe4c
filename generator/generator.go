package generator

import "context"

// Generator produces new notation text from a seed score. The
// production implementation calls a remote model; tests substitute
// their own.
type Generator interface {
	Generate(ctx context.Context, seed string) (string, error)
}
