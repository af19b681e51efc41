package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	staffIDKey   ctxKey = "staff_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithStaffID tags every log line of the request with the signed-in staff member.
func WithStaffID(ctx context.Context, staffID string) context.Context {
	return context.WithValue(ctx, staffIDKey, staffID)
}

func StaffIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(staffIDKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns the global logger with request_id and staff_id attached when present.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if staffID := StaffIDFrom(ctx); staffID != "" {
		l = l.With(zap.String("staff_id", staffID))
	}
	return l
}
