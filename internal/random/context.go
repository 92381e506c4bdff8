package random

import "context"

// sourceContextKey is the context key for a worker's random source.
type sourceContextKey struct{}

// WithSource binds src to ctx for the work scheduled under it.
func WithSource(ctx context.Context, src Source) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sourceContextKey{}, src)
}

// FromContext returns the source bound to ctx, or nil when none is bound.
func FromContext(ctx context.Context) Source {
	if ctx == nil {
		return nil
	}
	src, _ := ctx.Value(sourceContextKey{}).(Source)
	return src
}
