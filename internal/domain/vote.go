package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/enum"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// reputationDelta is the reputation an author gains when their content
// receives an up or a down vote.
type reputationDelta struct {
	up   int
	down int
}

var (
	postReputation    = reputationDelta{up: 5, down: -2}
	commentReputation = reputationDelta{up: 10, down: -2}
)

func (r reputationDelta) of(t entity.VoteType) int {
	switch t {
	case entity.UpVote:
		return r.up
	case entity.DownVote:
		return r.down
	}

	return 0
}

func voteValue(t entity.VoteType) int {
	switch t {
	case entity.UpVote:
		return 1
	case entity.DownVote:
		return -1
	}

	return 0
}

// voteTransition computes the result of submitting a vote when the user
// already has the current one (empty means no vote). Submitting the current
// vote again removes it. It returns the next vote and the changes of the
// target counter and the author reputation.
func voteTransition(
	current, submitted entity.VoteType, rep reputationDelta,
) (next entity.VoteType, votes int, reputation int) {
	next = submitted
	if current == submitted {
		next = ""
	}

	votes = voteValue(next) - voteValue(current)
	reputation = rep.of(next) - rep.of(current)
	return next, votes, reputation
}

type VoteDomain interface {
	VotePost(context.Context, *model.VotePostRequest) (*model.VotePostResponse, error)
	GetPostVote(context.Context, *model.GetPostVoteRequest) (*model.GetPostVoteResponse, error)
	VoteComment(context.Context, *model.VoteCommentRequest) (*model.VoteCommentResponse, error)
	GetCommentVote(context.Context, *model.GetCommentVoteRequest) (*model.GetCommentVoteResponse, error)
}

type voteDomain struct {
	voteRepo        repository.VoteRepository
	commentVoteRepo repository.CommentVoteRepository
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository
	userRepo        repository.UserRepository
}

func NewVoteDomain(
	voteRepo repository.VoteRepository,
	commentVoteRepo repository.CommentVoteRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *voteDomain {
	return &voteDomain{
		voteRepo:        voteRepo,
		commentVoteRepo: commentVoteRepo,
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		userRepo:        userRepo,
	}
}

func (d *voteDomain) VotePost(
	ctx context.Context, req *model.VotePostRequest,
) (*model.VotePostResponse, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	voteType, err := parseVoteType(req.VoteType)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Post not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	var current entity.VoteType
	vote, err := d.voteRepo.Get(ctx, userID, post.ID)
	if err == nil {
		current = vote.Type
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
		return nil, errorx.Unknown
	}

	next, votes, reputation := voteTransition(current, voteType, postReputation)

	switch {
	case current == "":
		err = d.voteRepo.Create(ctx, &entity.Vote{
			ID:     uuid.NewString(),
			UserID: userID,
			PostID: post.ID,
			Type:   next,
		})
	case next == "":
		err = d.voteRepo.DeleteByID(ctx, vote.ID)
	default:
		err = d.voteRepo.UpdateType(ctx, vote.ID, next)
	}
	if err != nil {
		return nil, voteWriteError(ctx, err)
	}

	if err := d.postRepo.IncreaseVotes(ctx, post.ID, votes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase votes of post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseReputation(ctx, post.AuthorID, reputation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase reputation: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitTransaction(ctx); err != nil {
		return nil, err
	}

	return &model.VotePostResponse{
		Votes:    post.Votes + votes,
		UserVote: model.ConvertVoteType(next),
	}, nil
}

func (d *voteDomain) GetPostVote(
	ctx context.Context, req *model.GetPostVoteRequest,
) (*model.GetPostVoteResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return &model.GetPostVoteResponse{UserVote: nil}, nil
	}

	vote, err := d.voteRepo.Get(ctx, userID, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetPostVoteResponse{UserVote: nil}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPostVoteResponse{UserVote: model.ConvertVoteType(vote.Type)}, nil
}

func (d *voteDomain) VoteComment(
	ctx context.Context, req *model.VoteCommentRequest,
) (*model.VoteCommentResponse, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	voteType, err := parseVoteType(req.VoteType)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	comment, err := d.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Comment not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	var current entity.VoteType
	vote, err := d.commentVoteRepo.Get(ctx, userID, comment.ID)
	if err == nil {
		current = vote.Type
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get comment vote: %v", err)
		return nil, errorx.Unknown
	}

	next, votes, reputation := voteTransition(current, voteType, commentReputation)

	switch {
	case current == "":
		err = d.commentVoteRepo.Create(ctx, &entity.CommentVote{
			ID:        uuid.NewString(),
			UserID:    userID,
			CommentID: comment.ID,
			Type:      next,
		})
	case next == "":
		err = d.commentVoteRepo.DeleteByID(ctx, vote.ID)
	default:
		err = d.commentVoteRepo.UpdateType(ctx, vote.ID, next)
	}
	if err != nil {
		return nil, voteWriteError(ctx, err)
	}

	if err := d.commentRepo.IncreaseVotes(ctx, comment.ID, votes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase votes of comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseReputation(ctx, comment.AuthorID, reputation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase reputation: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitTransaction(ctx); err != nil {
		return nil, err
	}

	return &model.VoteCommentResponse{
		Votes:    comment.Votes + votes,
		UserVote: model.ConvertVoteType(next),
	}, nil
}

func (d *voteDomain) GetCommentVote(
	ctx context.Context, req *model.GetCommentVoteRequest,
) (*model.GetCommentVoteResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return &model.GetCommentVoteResponse{UserVote: nil}, nil
	}

	vote, err := d.commentVoteRepo.Get(ctx, userID, req.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetCommentVoteResponse{UserVote: nil}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment vote: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCommentVoteResponse{UserVote: model.ConvertVoteType(vote.Type)}, nil
}

func parseVoteType(s string) (entity.VoteType, error) {
	voteType, err := enum.ToEnum[entity.VoteType](s)
	if err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid vote type")
	}

	return voteType, nil
}

// voteWriteError converts a failure of writing the vote row. A concurrent
// request of the same user may have written the row first.
func voteWriteError(ctx context.Context, err error) error {
	if repository.IsDuplicateKey(err) || errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.New(errorx.AlreadyExists, "Vote has been changed by another request")
	}

	xcontext.Logger(ctx).Errorf("Cannot write vote: %v", err)
	return errorx.Unknown
}
