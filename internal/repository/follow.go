package repository

import (
	"context"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

type FollowRepository interface {
	Get(ctx context.Context, userID, postID string) (*entity.Follow, error)
	Create(ctx context.Context, data *entity.Follow) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByPostID(ctx context.Context, postID string) error
	GetListByUserID(ctx context.Context, userID string, limit int) ([]entity.Follow, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Get(ctx context.Context, userID, postID string) (*entity.Follow, error) {
	var record entity.Follow
	err := xcontext.DB(ctx).Take(&record, "user_id=? AND post_id=?", userID, postID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) error {
	return xcontext.DB(ctx).Omit("Post").Create(data).Error
}

func (r *followRepository) DeleteByID(ctx context.Context, id string) error {
	return checkAffected(xcontext.DB(ctx).Delete(&entity.Follow{}, "id=?", id))
}

func (r *followRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Where("post_id=?", postID).Delete(&entity.Follow{}).Error
}

func (r *followRepository) GetListByUserID(ctx context.Context, userID string, limit int) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Preload("Post").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
