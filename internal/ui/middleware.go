package ui

import (
	"context"
	"net/http"
)

type contextKey string

const flashContextKey contextKey = "flash"

// FlashFromContext returns the notifications carried over from the previous
// request.
func FlashFromContext(ctx context.Context) []string {
	messages, _ := ctx.Value(flashContextKey).([]string)
	return messages
}

// FlashMiddleware moves the flash cookie into the request context and
// clears it, so each message is shown once.
func (ui *UI) FlashMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if messages := ReadFlash(r); messages != nil {
			ClearFlash(w)
			r = r.WithContext(context.WithValue(r.Context(), flashContextKey, messages))
		}
		next.ServeHTTP(w, r)
	})
}
