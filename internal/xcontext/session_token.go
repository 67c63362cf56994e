package xcontext

import "context"

type sessionTokenKey struct{}

// SetSessionToken keeps the raw bearer token so sign-out can revoke it.
func SetSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey{}, token)
}

func GetSessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionTokenKey{}).(string)
	return token, ok && token != ""
}
