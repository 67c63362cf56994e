package xcontext

import "context"

type (
	requestIDKey          struct{}
	shutdownInProgressKey struct{}
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	return requestID, ok
}

// SetShutdownInProgress marks a request that arrived after the server base
// context was cancelled.
func SetShutdownInProgress(ctx context.Context, inProgress bool) context.Context {
	return context.WithValue(ctx, shutdownInProgressKey{}, inProgress)
}

func IsShutdownInProgress(ctx context.Context) bool {
	inProgress, ok := ctx.Value(shutdownInProgressKey{}).(bool)
	return ok && inProgress
}
