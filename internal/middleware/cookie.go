package middleware

import (
	"context"
	"net/http"

	"github.com/overflow-lab/backend/pkg/router"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(context.Context) []http.Cookie
}

// HandleSetAccessToken writes the cookies of responses implementing
// CookieResponse.
func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		resp, ok := router.Response(ctx).(CookieResponse)
		if !ok {
			return ctx, nil
		}

		w := xcontext.HTTPWriter(ctx)
		for _, cookie := range resp.CookieInfo(ctx) {
			cookie := cookie
			http.SetCookie(w, &cookie)
		}

		return ctx, nil
	}
}
