package repository

import (
	"context"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	GetListByAuthorID(ctx context.Context, authorID string, limit int) ([]entity.Comment, error)
	DeleteByPostID(ctx context.Context, postID string) error
	IncreaseVotes(ctx context.Context, id string, delta int) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Omit("Author", "Post").Create(data).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var record entity.Comment
	if err := xcontext.DB(ctx).Preload("Author").Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentRepository) GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("post_id=?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) GetListByAuthorID(ctx context.Context, authorID string, limit int) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Preload("Post").
		Where("author_id=?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Where("post_id=?", postID).Delete(&entity.Comment{}).Error
}

func (r *commentRepository) IncreaseVotes(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=?", id).
		UpdateColumn("votes", gorm.Expr("votes+?", delta))

	return checkAffected(tx)
}
