package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/crypto"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetActivity(context.Context, *model.GetUserActivityRequest) (*model.GetUserActivityResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	voteRepo    repository.VoteRepository
	followRepo  repository.FollowRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	followRepo repository.FollowRepository,
) *userDomain {
	return &userDomain{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		followRepo:  followRepo,
	}
}

func (d *userDomain) GetActivity(
	ctx context.Context, req *model.GetUserActivityRequest,
) (*model.GetUserActivityResponse, error) {
	if _, err := d.getUser(ctx, req.ID); err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetListByAuthorID(ctx, req.ID, activityLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts of user: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetListByAuthorID(ctx, req.ID, activityLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments of user: %v", err)
		return nil, errorx.Unknown
	}

	votes, err := d.voteRepo.GetListByUserID(ctx, req.ID, activityLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get votes of user: %v", err)
		return nil, errorx.Unknown
	}

	follows, err := d.followRepo.GetListByUserID(ctx, req.ID, activityLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follows of user: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetUserActivityResponse{
		Posts:    model.ConvertPosts(posts),
		Comments: []model.ActivityComment{},
		Votes:    []model.ActivityVote{},
		Follows:  []model.ActivityFollow{},
	}

	for i := range comments {
		resp.Comments = append(resp.Comments, model.ActivityComment{
			Comment: model.ConvertComment(&comments[i]),
			Post:    model.ConvertPostSummary(&comments[i].Post),
		})
	}

	for i := range votes {
		resp.Votes = append(resp.Votes, model.ActivityVote{
			ID:        votes[i].ID,
			VoteType:  string(votes[i].Type),
			CreatedAt: votes[i].CreatedAt.Format(model.DefaultTimeLayout),
			Post:      model.ConvertPostSummary(&votes[i].Post),
		})
	}

	for i := range follows {
		resp.Follows = append(resp.Follows, model.ActivityFollow{
			ID:        follows[i].ID,
			CreatedAt: follows[i].CreatedAt.Format(model.DefaultTimeLayout),
			Post:      model.ConvertPostSummary(&follows[i].Post),
		})
	}

	return resp, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	if req.ID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot update another user")
	}

	user, err := d.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := &entity.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
	}

	err = checkIdentityAvailable(ctx, d.userRepo, user.ID, update.Email, update.Username)
	if err != nil {
		return nil, err
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, errorx.New(errorx.BadRequest, "Current password is required")
		}

		ok, err := crypto.ComparePassword(user.Password, req.CurrentPassword)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot compare password: %v", err)
			return nil, errorx.Unknown
		}

		if !ok {
			return nil, errorx.New(errorx.BadRequest, "Current password is incorrect")
		}

		update.Password, err = crypto.HashPassword(req.NewPassword)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.userRepo.UpdateByID(ctx, user.ID, update); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Username or email is already used")
		}

		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	updated, err := d.getUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.UpdateUserResponse{User: model.ConvertProfile(updated)}, nil
}

func (d *userDomain) getUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
