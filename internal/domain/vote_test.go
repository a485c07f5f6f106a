package domain

import (
	"context"
	"testing"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/testutil"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_voteTransition(t *testing.T) {
	tests := []struct {
		name           string
		current        entity.VoteType
		submitted      entity.VoteType
		rep            reputationDelta
		wantNext       entity.VoteType
		wantVotes      int
		wantReputation int
	}{
		{"post up", "", entity.UpVote, postReputation, entity.UpVote, 1, 5},
		{"post down", "", entity.DownVote, postReputation, entity.DownVote, -1, -2},
		{"post remove up", entity.UpVote, entity.UpVote, postReputation, "", -1, -5},
		{"post remove down", entity.DownVote, entity.DownVote, postReputation, "", 1, 2},
		{"post up to down", entity.UpVote, entity.DownVote, postReputation, entity.DownVote, -2, -7},
		{"post down to up", entity.DownVote, entity.UpVote, postReputation, entity.UpVote, 2, 7},
		{"comment up", "", entity.UpVote, commentReputation, entity.UpVote, 1, 10},
		{"comment up to down", entity.UpVote, entity.DownVote, commentReputation, entity.DownVote, -2, -12},
		{"comment down to up", entity.DownVote, entity.UpVote, commentReputation, entity.UpVote, 2, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, votes, reputation := voteTransition(tt.current, tt.submitted, tt.rep)
			require.Equal(t, tt.wantNext, next)
			require.Equal(t, tt.wantVotes, votes)
			require.Equal(t, tt.wantReputation, reputation)
		})
	}
}

func newVoteDomain() *voteDomain {
	return NewVoteDomain(
		repository.NewVoteRepository(),
		repository.NewCommentVoteRepository(),
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewUserRepository(),
	)
}

func getReputation(t *testing.T, ctx context.Context, userID string) int {
	user, err := repository.NewUserRepository().GetByID(ctx, userID)
	require.NoError(t, err)
	return user.Reputation
}

func Test_voteDomain_VotePost_ToggleRestoresState(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newVoteDomain()

	// Post3 has no vote and its author has the fixture reputation.
	before := getReputation(t, ctx, testutil.User1.ID)
	voterCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	resp, err := d.VotePost(voterCtx, &model.VotePostRequest{PostID: testutil.Post3.ID, VoteType: "up"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Votes)
	require.Equal(t, "up", *resp.UserVote)
	require.Equal(t, before+5, getReputation(t, ctx, testutil.User1.ID))

	resp, err = d.VotePost(voterCtx, &model.VotePostRequest{PostID: testutil.Post3.ID, VoteType: "up"})
	require.NoError(t, err)
	require.Equal(t, 0, resp.Votes)
	require.Nil(t, resp.UserVote)
	require.Equal(t, before, getReputation(t, ctx, testutil.User1.ID))

	_, err = repository.NewVoteRepository().Get(ctx, testutil.User3.ID, testutil.Post3.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_voteDomain_VotePost_Switch(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newVoteDomain()

	// User2 has already up voted Post1.
	before := getReputation(t, ctx, testutil.User1.ID)
	voterCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	resp, err := d.VotePost(voterCtx, &model.VotePostRequest{PostID: testutil.Post1.ID, VoteType: "down"})
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.Votes-2, resp.Votes)
	require.Equal(t, "down", *resp.UserVote)
	require.Equal(t, before-7, getReputation(t, ctx, testutil.User1.ID))

	post, err := repository.NewPostRepository().GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.Votes-2, post.Votes)

	state, err := d.GetPostVote(voterCtx, &model.GetPostVoteRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, "down", *state.UserVote)
}

func Test_voteDomain_VotePost_Errors(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newVoteDomain()

	_, err := d.VotePost(ctx, &model.VotePostRequest{PostID: testutil.Post1.ID, VoteType: "up"})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = d.VotePost(userCtx, &model.VotePostRequest{PostID: testutil.Post1.ID, VoteType: "sideways"})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = d.VotePost(userCtx, &model.VotePostRequest{PostID: "unknown", VoteType: "up"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_voteDomain_GetPostVote_Anonymous(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newVoteDomain()

	resp, err := d.GetPostVote(ctx, &model.GetPostVoteRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Nil(t, resp.UserVote)
}

func Test_voteDomain_VoteComment(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newVoteDomain()

	before := getReputation(t, ctx, testutil.Comment1.AuthorID)
	voterCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := d.VoteComment(voterCtx, &model.VoteCommentRequest{CommentID: testutil.Comment1.ID, VoteType: "up"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Votes)
	require.Equal(t, before+10, getReputation(t, ctx, testutil.Comment1.AuthorID))

	resp, err = d.VoteComment(voterCtx, &model.VoteCommentRequest{CommentID: testutil.Comment1.ID, VoteType: "down"})
	require.NoError(t, err)
	require.Equal(t, -1, resp.Votes)
	require.Equal(t, "down", *resp.UserVote)
	require.Equal(t, before-2, getReputation(t, ctx, testutil.Comment1.AuthorID))

	state, err := d.GetCommentVote(voterCtx, &model.GetCommentVoteRequest{CommentID: testutil.Comment1.ID})
	require.NoError(t, err)
	require.Equal(t, "down", *state.UserVote)

	_, err = d.VoteComment(voterCtx, &model.VoteCommentRequest{CommentID: "unknown", VoteType: "up"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

// The author of the voted post does not exist, so the reputation update is
// the failing write of the vote transaction.
func Test_voteDomain_VotePost_RollsBackOnFailure(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newVoteDomain()

	postRepo := repository.NewPostRepository()
	require.NoError(t, postRepo.Create(ctx, &entity.Post{
		Base:     entity.Base{ID: "orphan-post"},
		Title:    "Orphan",
		Content:  "The author has been removed",
		AuthorID: "ghost",
	}))

	voterCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err := d.VotePost(voterCtx, &model.VotePostRequest{PostID: "orphan-post", VoteType: "up"})
	require.Equal(t, errorx.Unknown, err)

	_, err = repository.NewVoteRepository().Get(ctx, testutil.User3.ID, "orphan-post")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	post, err := postRepo.GetByID(ctx, "orphan-post")
	require.NoError(t, err)
	require.Equal(t, 0, post.Votes)
}

func Test_voteDomain_VoteComment_RollsBackOnFailure(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	d := newVoteDomain()

	commentRepo := repository.NewCommentRepository()
	require.NoError(t, commentRepo.Create(ctx, &entity.Comment{
		Base:     entity.Base{ID: "orphan-comment"},
		Content:  "The author has been removed",
		AuthorID: "ghost",
		PostID:   testutil.Post1.ID,
	}))

	voterCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err := d.VoteComment(voterCtx, &model.VoteCommentRequest{CommentID: "orphan-comment", VoteType: "down"})
	require.Equal(t, errorx.Unknown, err)

	_, err = repository.NewCommentVoteRepository().Get(ctx, testutil.User3.ID, "orphan-comment")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	comment, err := commentRepo.GetByID(ctx, "orphan-comment")
	require.NoError(t, err)
	require.Equal(t, 0, comment.Votes)
}

func Test_voteWriteError(t *testing.T) {
	ctx := testutil.MockContext()

	err := voteWriteError(ctx, gorm.ErrDuplicatedKey)
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	err = voteWriteError(ctx, gorm.ErrInvalidDB)
	require.Equal(t, errorx.Unknown, err)
}
