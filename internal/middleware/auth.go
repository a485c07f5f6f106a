package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/router"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
	isOptional     bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

// WithOptional lets anonymous requests pass. An invalid token is treated as
// no token.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.isOptional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		// A previous verifier has already authenticated the request.
		if xcontext.RequestUserID(ctx) != "" {
			return ctx, nil
		}

		if a.useAccessToken {
			if userID := verifyAccessToken(ctx); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		if a.isOptional {
			return ctx, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "Authentication required")
	}
}

// verifyAccessToken returns the user id of the access token in the cookie or
// in the Authorization header. It returns an empty string if there is no
// valid token.
func verifyAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	engine := xcontext.TokenEngine(ctx)
	if req == nil || engine == nil {
		return ""
	}

	token := getAccessToken(req, xcontext.Configs(ctx).Auth.AccessToken.Name)
	if token == "" {
		return ""
	}

	info, err := engine.Verify(token)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
		return ""
	}

	return info.ID
}

func getAccessToken(req *http.Request, cookieName string) string {
	if cookie, err := req.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := req.Header.Get("Authorization")
	prefix, token, found := strings.Cut(auth, " ")
	if !found || !strings.EqualFold(prefix, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
