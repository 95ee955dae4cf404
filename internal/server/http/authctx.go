package httpserver

import (
	"context"

	"github.com/campusware/registrar/internal/model"
)

type ctxKey string

const identityKey ctxKey = "registrar.identity"

// withIdentity stores the resolved caller identity in the request context.
func withIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx fetches the caller identity from context. A request that
// never went through the resolver middleware reads as anonymous.
func IdentityFromCtx(ctx context.Context) model.Identity {
	if id, ok := ctx.Value(identityKey).(model.Identity); ok {
		return id
	}
	return model.Anonymous()
}
