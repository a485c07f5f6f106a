package domain

import (
	"testing"

	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/crypto"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/testutil"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newUserDomain() *userDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewVoteRepository(),
		repository.NewFollowRepository(),
	)
}

func Test_userDomain_GetActivity(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newUserDomain()

	resp, err := d.GetActivity(ctx, &model.GetUserActivityRequest{ID: testutil.User2.ID})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Len(t, resp.Comments, 1)
	require.Equal(t, testutil.Post1.Title, resp.Comments[0].Post.Title)
	require.Len(t, resp.Votes, 1)
	require.Equal(t, "up", resp.Votes[0].VoteType)
	require.Equal(t, testutil.Post1.Title, resp.Votes[0].Post.Title)
	require.Len(t, resp.Follows, 1)
	require.Equal(t, testutil.Post1.ID, resp.Follows[0].Post.ID)

	resp, err = d.GetActivity(ctx, &model.GetUserActivityRequest{ID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)
	require.NotNil(t, resp.Votes)
	require.Empty(t, resp.Votes)

	_, err = d.GetActivity(ctx, &model.GetUserActivityRequest{ID: "unknown"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newUserDomain()
	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	_, err := d.Update(ctx, &model.UpdateUserRequest{ID: testutil.User1.ID, Username: "x"})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))

	_, err = d.Update(userCtx, &model.UpdateUserRequest{ID: testutil.User2.ID, Username: "x"})
	require.True(t, errorx.Is(err, errorx.PermissionDenied))

	_, err = d.Update(userCtx, &model.UpdateUserRequest{ID: testutil.User1.ID, Username: testutil.User2.Username})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	_, err = d.Update(userCtx, &model.UpdateUserRequest{ID: testutil.User1.ID, Email: testutil.User3.Email})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	_, err = d.Update(userCtx, &model.UpdateUserRequest{ID: testutil.User1.ID, NewPassword: "new"})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = d.Update(userCtx, &model.UpdateUserRequest{
		ID:              testutil.User1.ID,
		CurrentPassword: "wrong",
		NewPassword:     "new",
	})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	resp, err := d.Update(userCtx, &model.UpdateUserRequest{
		ID:              testutil.User1.ID,
		Username:        "renamed",
		Email:           testutil.User1.Email,
		CurrentPassword: testutil.Password,
		NewPassword:     "new-password",
	})
	require.NoError(t, err)
	require.Equal(t, model.Profile{
		ID:       testutil.User1.ID,
		Username: "renamed",
		Email:    testutil.User1.Email,
	}, resp.User)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	ok, err := crypto.ComparePassword(user.Password, "new-password")
	require.NoError(t, err)
	require.True(t, ok)
}
