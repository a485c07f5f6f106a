package xcontext

import (
	"context"

	"github.com/overflow-lab/backend/pkg/authenticator"
)

// AccessToken is the payload signed into the authentication cookie.
type AccessToken struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[AccessToken] {
	engine, _ := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[AccessToken])
	return engine
}
