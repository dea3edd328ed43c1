package logger

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// FromContext entry stored in ctx, or the standard logger
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
			return entry
		}
	}

	return logrus.NewEntry(logrus.StandardLogger())
}

// WithContext attach entry to ctx
func WithContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry)
}

// WithRequestID middleware attaching a request scoped entry, must run after middleware.RequestID
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		entry := FromContext(ctx).WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(ctx),
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		next.ServeHTTP(w, r.WithContext(WithContext(ctx, entry)))
	})
}
