package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/testutil"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func newTestServer() *srv {
	ctx := testutil.NewFixtureContext()
	s := &srv{ctx: ctx, configs: xcontext.Configs(ctx)}
	s.loadMetrics()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()
	return s
}

func (s *srv) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}

	return w, env
}

func (s *srv) login(t *testing.T, email string) *http.Cookie {
	w, env := s.do(t, http.MethodPost, "/auth/login",
		`{"email":"`+email+`","password":"`+testutil.Password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, env.Error)

	for _, c := range w.Result().Cookies() {
		if c.Name == s.configs.Auth.AccessToken.Name {
			return c
		}
	}

	require.FailNow(t, "no auth cookie")
	return nil
}

func Test_Api_Signup(t *testing.T) {
	s := newTestServer()

	w, env := s.do(t, http.MethodPost, "/auth/signup",
		`{"email":"new@example.com","username":"newbie","password":"secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Zero(t, env.Code)

	var data struct {
		User struct {
			Username   string `json:"username"`
			Reputation int    `json:"reputation"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "newbie", data.User.Username)
	require.Equal(t, 1, data.User.Reputation)
	require.NotContains(t, w.Body.String(), "password")

	w, env = s.do(t, http.MethodPost, "/auth/signup",
		`{"email":"new@example.com","username":"other","password":"secret"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, int64(errorx.AlreadyExists), env.Code)
}

func Test_Api_LoginSetsCookie(t *testing.T) {
	s := newTestServer()

	cookie := s.login(t, testutil.User1.Email)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, int(s.configs.Auth.AccessToken.Expiration.Seconds()), cookie.MaxAge)

	w, env := s.do(t, http.MethodPost, "/auth/login",
		`{"email":"`+testutil.User1.Email+`","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, int64(errorx.Unauthenticated), env.Code)
}

func Test_Api_Logout(t *testing.T) {
	s := newTestServer()

	w, _ := s.do(t, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func Test_Api_RouteErrors(t *testing.T) {
	s := newTestServer()

	w, env := s.do(t, http.MethodPatch, "/posts", "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, int64(errorx.MethodNotAllowed), env.Code)

	w, env = s.do(t, http.MethodGet, "/unknown", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, int64(errorx.NotFound), env.Code)

	w, env = s.do(t, http.MethodPost, "/auth/signup", `{"email":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, int64(errorx.BadRequest), env.Code)
}

func Test_Api_VotePost(t *testing.T) {
	s := newTestServer()
	path := "/posts/" + testutil.Post1.ID + "/vote"

	w, env := s.do(t, http.MethodPost, path, `{"voteType":"up"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, int64(errorx.Unauthenticated), env.Code)

	cookie := s.login(t, testutil.User3.Email)

	w, env = s.do(t, http.MethodPost, path, `{"voteType":"up"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, env.Error)

	var data struct {
		Votes    int     `json:"votes"`
		UserVote *string `json:"userVote"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, testutil.Post1.Votes+1, data.Votes)
	require.NotNil(t, data.UserVote)
	require.Equal(t, "up", *data.UserVote)

	w, env = s.do(t, http.MethodGet, path, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"userVote":"up"}`, string(env.Data))

	// The vote is readable anonymously, without a user vote.
	w, env = s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"userVote":null}`, string(env.Data))
}

func Test_Api_Metrics(t *testing.T) {
	s := newTestServer()

	s.do(t, http.MethodGet, "/posts", "")

	w, _ := s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `route="/posts"`)
}
