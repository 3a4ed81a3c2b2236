package bind

import "context"

type storeContextKey struct{}

// WithStore attaches the principal's store to ctx. HTTP handlers and the
// middleware package retrieve it with [FromContext] so one request always
// resolves against one principal's state.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, s)
}

// FromContext returns the store attached by [WithStore], if any.
func FromContext(ctx context.Context) (*Store, bool) {
	if ctx == nil {
		return nil, false
	}

	s, ok := ctx.Value(storeContextKey{}).(*Store)
	return s, ok
}
