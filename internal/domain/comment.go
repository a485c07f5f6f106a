package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *commentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Content is required")
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Post not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		Content:  req.Content,
		AuthorID: userID,
		PostID:   req.PostID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseAnswers(ctx, req.PostID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase answers: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitTransaction(ctx); err != nil {
		return nil, err
	}

	created, err := d.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCommentResponse{Comment: model.ConvertComment(created)}, nil
}
