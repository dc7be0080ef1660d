package session

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey struct{}

// Middleware loads the session data into the request context. Read failures
// are logged and leave the session empty.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := h.Read(r)
		if err != nil {
			h.logger.Error("failed to read session",
				slog.Any("error", err),
				slog.String("path", r.URL.Path))
			data = ""
		}
		next.ServeHTTP(w, r.WithContext(WithData(r.Context(), data)))
	})
}

// WithData returns a copy of ctx carrying session data
func WithData(ctx context.Context, data string) context.Context {
	return context.WithValue(ctx, contextKey{}, data)
}

// FromContext returns the session data stored by Middleware
func FromContext(ctx context.Context) (string, bool) {
	data, ok := ctx.Value(contextKey{}).(string)
	return data, ok
}
