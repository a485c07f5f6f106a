package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowDomain interface {
	Toggle(context.Context, *model.ToggleFollowRequest) (*model.ToggleFollowResponse, error)
	Get(context.Context, *model.GetFollowRequest) (*model.GetFollowResponse, error)
}

type followDomain struct {
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
) *followDomain {
	return &followDomain{
		followRepo: followRepo,
		postRepo:   postRepo,
	}
}

func (d *followDomain) Toggle(
	ctx context.Context, req *model.ToggleFollowRequest,
) (*model.ToggleFollowResponse, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Post not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	follow, err := d.followRepo.Get(ctx, userID, req.PostID)
	if err == nil {
		if err := d.followRepo.DeleteByID(ctx, follow.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
			return nil, errorx.Unknown
		}

		return &model.ToggleFollowResponse{IsFollowing: false}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
		return nil, errorx.Unknown
	}

	err = d.followRepo.Create(ctx, &entity.Follow{
		ID:     uuid.NewString(),
		UserID: userID,
		PostID: req.PostID,
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Follow has been changed by another request")
		}

		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleFollowResponse{IsFollowing: true}, nil
}

func (d *followDomain) Get(
	ctx context.Context, req *model.GetFollowRequest,
) (*model.GetFollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return &model.GetFollowResponse{IsFollowing: false}, nil
	}

	_, err := d.followRepo.Get(ctx, userID, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetFollowResponse{IsFollowing: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowResponse{IsFollowing: true}, nil
}
