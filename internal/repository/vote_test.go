package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_voteRepository_Create_Duplicate(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewVoteRepository()

	err := repo.Create(ctx, &entity.Vote{
		ID:     uuid.NewString(),
		UserID: testutil.Vote1.UserID,
		PostID: testutil.Vote1.PostID,
		Type:   entity.DownVote,
	})
	require.Error(t, err)
	require.True(t, repository.IsDuplicateKey(err))
}

func Test_voteRepository_DeleteThenCreate(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewVoteRepository()

	require.NoError(t, repo.DeleteByID(ctx, testutil.Vote1.ID))
	require.NoError(t, repo.Create(ctx, &entity.Vote{
		ID:     uuid.NewString(),
		UserID: testutil.Vote1.UserID,
		PostID: testutil.Vote1.PostID,
		Type:   entity.DownVote,
	}))

	vote, err := repo.Get(ctx, testutil.Vote1.UserID, testutil.Vote1.PostID)
	require.NoError(t, err)
	require.Equal(t, entity.DownVote, vote.Type)
}

func Test_commentVoteRepository_DeleteByPostID(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewCommentVoteRepository()

	require.NoError(t, repo.Create(ctx, &entity.CommentVote{
		ID:        uuid.NewString(),
		UserID:    testutil.User1.ID,
		CommentID: testutil.Comment1.ID,
		Type:      entity.UpVote,
	}))

	require.NoError(t, repo.DeleteByPostID(ctx, testutil.Comment1.PostID))

	_, err := repo.Get(ctx, testutil.User1.ID, testutil.Comment1.ID)
	require.Error(t, err)
}

func Test_followRepository_GetListByUserID(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewFollowRepository()

	follows, err := repo.GetListByUserID(ctx, testutil.User2.ID, 100)
	require.NoError(t, err)
	require.Len(t, follows, 1)
	require.Equal(t, testutil.Post1.Title, follows[0].Post.Title)
}
