package requestctx

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	operatorKey  ctxKey = "operator"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithOperator marks ctx as carrying a verified operator session.
func WithOperator(ctx context.Context) context.Context {
	return context.WithValue(ctx, operatorKey, true)
}

func IsOperator(ctx context.Context) bool {
	value, _ := ctx.Value(operatorKey).(bool)
	return value
}
