package repository

import (
	"context"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

type VoteRepository interface {
	Get(ctx context.Context, userID, postID string) (*entity.Vote, error)
	Create(ctx context.Context, data *entity.Vote) error
	UpdateType(ctx context.Context, id string, voteType entity.VoteType) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByPostID(ctx context.Context, postID string) error
	GetListByUserID(ctx context.Context, userID string, limit int) ([]entity.Vote, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Get(ctx context.Context, userID, postID string) (*entity.Vote, error) {
	var record entity.Vote
	err := xcontext.DB(ctx).Take(&record, "user_id=? AND post_id=?", userID, postID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *voteRepository) Create(ctx context.Context, data *entity.Vote) error {
	return xcontext.DB(ctx).Omit("Post").Create(data).Error
}

func (r *voteRepository) UpdateType(ctx context.Context, id string, voteType entity.VoteType) error {
	tx := xcontext.DB(ctx).Model(&entity.Vote{}).Where("id=?", id).Update("type", voteType)
	return checkAffected(tx)
}

func (r *voteRepository) DeleteByID(ctx context.Context, id string) error {
	return checkAffected(xcontext.DB(ctx).Delete(&entity.Vote{}, "id=?", id))
}

func (r *voteRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Where("post_id=?", postID).Delete(&entity.Vote{}).Error
}

func (r *voteRepository) GetListByUserID(ctx context.Context, userID string, limit int) ([]entity.Vote, error) {
	var result []entity.Vote
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

type CommentVoteRepository interface {
	Get(ctx context.Context, userID, commentID string) (*entity.CommentVote, error)
	Create(ctx context.Context, data *entity.CommentVote) error
	UpdateType(ctx context.Context, id string, voteType entity.VoteType) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByPostID(ctx context.Context, postID string) error
}

type commentVoteRepository struct{}

func NewCommentVoteRepository() *commentVoteRepository {
	return &commentVoteRepository{}
}

func (r *commentVoteRepository) Get(ctx context.Context, userID, commentID string) (*entity.CommentVote, error) {
	var record entity.CommentVote
	err := xcontext.DB(ctx).Take(&record, "user_id=? AND comment_id=?", userID, commentID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentVoteRepository) Create(ctx context.Context, data *entity.CommentVote) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commentVoteRepository) UpdateType(ctx context.Context, id string, voteType entity.VoteType) error {
	tx := xcontext.DB(ctx).Model(&entity.CommentVote{}).Where("id=?", id).Update("type", voteType)
	return checkAffected(tx)
}

func (r *commentVoteRepository) DeleteByID(ctx context.Context, id string) error {
	return checkAffected(xcontext.DB(ctx).Delete(&entity.CommentVote{}, "id=?", id))
}

// DeleteByPostID removes the votes on every comment of a post.
func (r *commentVoteRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).
		Where("comment_id IN (?)",
			xcontext.DB(ctx).Unscoped().Model(&entity.Comment{}).Select("id").Where("post_id=?", postID)).
		Delete(&entity.CommentVote{}).Error
}
