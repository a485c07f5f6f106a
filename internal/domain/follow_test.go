package domain

import (
	"testing"

	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/testutil"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_followDomain_Toggle(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := NewFollowDomain(repository.NewFollowRepository(), repository.NewPostRepository())

	_, err := d.Toggle(ctx, &model.ToggleFollowRequest{PostID: testutil.Post1.ID})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = d.Toggle(userCtx, &model.ToggleFollowRequest{PostID: "unknown"})
	require.True(t, errorx.Is(err, errorx.NotFound))

	resp, err := d.Toggle(userCtx, &model.ToggleFollowRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.IsFollowing)

	state, err := d.Get(userCtx, &model.GetFollowRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, state.IsFollowing)

	resp, err = d.Toggle(userCtx, &model.ToggleFollowRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.IsFollowing)

	state, err = d.Get(userCtx, &model.GetFollowRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, state.IsFollowing)
}

func Test_followDomain_Get_Anonymous(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := NewFollowDomain(repository.NewFollowRepository(), repository.NewPostRepository())

	resp, err := d.Get(ctx, &model.GetFollowRequest{PostID: testutil.Follow1.PostID})
	require.NoError(t, err)
	require.False(t, resp.IsFollowing)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.Follow1.UserID)
	resp, err = d.Get(userCtx, &model.GetFollowRequest{PostID: testutil.Follow1.PostID})
	require.NoError(t, err)
	require.True(t, resp.IsFollowing)
}
