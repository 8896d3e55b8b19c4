package api

import (
	"context"
	"net/http"
)

// CredentialSource yields the bearer credential to attach, read at request time.
type CredentialSource func(ctx context.Context) (string, bool)

type anonymousKey struct{}

// withoutCredential marks a request that must go out unauthenticated.
func withoutCredential(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// bearerTransport decorates every outbound request with the current credential.
type bearerTransport struct {
	next   http.RoundTripper
	source CredentialSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source == nil || isAnonymous(req.Context()) {
		return t.next.RoundTrip(req)
	}
	token, ok := t.source(req.Context())
	if !ok || token == "" {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(authed)
}
