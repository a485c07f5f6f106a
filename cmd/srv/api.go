package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/overflow-lab/backend/internal/middleware"
	"github.com/overflow-lab/backend/pkg/router"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.loadRedis()
	s.loadSearchIndex()
	s.loadMetrics()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()
	defer s.close()

	cfg := xcontext.Configs(s.ctx).ApiServer
	httpSrv := &http.Server{
		Addr:    cfg.Address(),
		Handler: middleware.AllowCors(s.router.Handler(), cfg.AllowedOrigins),
	}

	errCh := make(chan error, 1)
	go func() {
		xcontext.Logger(s.ctx).Infof("Starting server on %s", httpSrv.Addr)
		var err error
		if cfg.Cert != "" && cfg.Key != "" {
			err = httpSrv.ListenAndServeTLS(cfg.Cert, cfg.Key)
		} else {
			err = httpSrv.ListenAndServe()
		}

		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	xcontext.Logger(s.ctx).Infof("Shutting down server")
	ctx, cancel := withTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		xcontext.Logger(s.ctx).Errorf("Server forced to shutdown: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server exited")
	return nil
}

func (s *srv) loadRouter() {
	if !s.configs.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus(s.metrics))
	s.router.Before(middleware.NewAuthVerifier().WithAccessToken().WithOptional().Middleware())
	s.router.After(middleware.HandleSetAccessToken())

	s.router.Handle(http.MethodGet, "/metrics", s.metrics.Handler())

	// Auth API
	{
		router.POST(s.router, "/auth/signup", s.authDomain.Signup)
		router.POST(s.router, "/auth/login", s.authDomain.Login)
		router.POST(s.router, "/auth/logout", s.authDomain.Logout)
		router.GET(s.router, "/auth/user/:id", s.authDomain.GetUser)
	}

	// Public API, the requester is known if the request carries a valid token.
	{
		router.GET(s.router, "/posts", s.postDomain.GetList)
		router.GET(s.router, "/posts/search", s.searchDomain.Search)
		router.GET(s.router, "/posts/:id", s.postDomain.Get)
		router.GET(s.router, "/posts/:id/vote", s.voteDomain.GetPostVote)
		router.GET(s.router, "/posts/:id/follow", s.followDomain.Get)
		router.GET(s.router, "/comments/:id/vote", s.voteDomain.GetCommentVote)
		router.GET(s.router, "/users/:id/activity", s.userDomain.GetActivity)
	}

	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())

	// Post API
	{
		router.POST(authRouter, "/posts", s.postDomain.Create)
		router.PUT(authRouter, "/posts/:id", s.postDomain.Update)
		router.DELETE(authRouter, "/posts/:id", s.postDomain.Delete)
		router.POST(authRouter, "/posts/:id/comments", s.commentDomain.Create)
		router.POST(authRouter, "/posts/:id/vote", s.voteDomain.VotePost)
		router.POST(authRouter, "/posts/:id/follow", s.followDomain.Toggle)
		router.POST(authRouter, "/comments/:id/vote", s.voteDomain.VoteComment)
	}

	// User API
	{
		router.PUT(authRouter, "/users/:id/update", s.userDomain.Update)
	}
}
