package model

import (
	"context"
	"net/http"

	"github.com/overflow-lab/backend/pkg/xcontext"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupResponse struct {
	User User `json:"user"`
}

func (SignupResponse) HTTPStatus() int {
	return http.StatusCreated
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User Profile `json:"user"`

	AccessToken string `json:"-"`
}

func (r LoginResponse) CookieInfo(ctx context.Context) []http.Cookie {
	cfg := xcontext.Configs(ctx)
	return []http.Cookie{
		authCookie(ctx, r.AccessToken, int(cfg.Auth.AccessToken.Expiration.Seconds())),
	}
}

type LogoutRequest struct{}

type LogoutResponse struct{}

func (r LogoutResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return []http.Cookie{authCookie(ctx, "", -1)}
}

type GetUserRequest struct {
	ID string `uri:"id"`
}

type GetUserResponse User

func authCookie(ctx context.Context, value string, maxAge int) http.Cookie {
	cfg := xcontext.Configs(ctx)
	return http.Cookie{
		Name:     cfg.Auth.AccessToken.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
	}
}
