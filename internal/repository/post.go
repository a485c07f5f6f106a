package repository

import (
	"context"
	"strings"
	"time"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListPostFilter struct {
	// Tag keeps only posts carrying this tag.
	Tag string

	// AnyTags keeps posts carrying at least one of these tags.
	AnyTags []string

	NoAnswers        bool
	NoUpvotedAnswers bool
	HasBounty        bool
	CreatedAfter     time.Time

	// OrderBy is a list of "column DIRECTION" clauses applied in order.
	OrderBy []string

	Offset int
	Limit  int
}

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error)
	Count(ctx context.Context, filter GetListPostFilter) (int64, error)
	GetListByAuthorID(ctx context.Context, authorID string, limit int) ([]entity.Post, error)
	Search(ctx context.Context, q string, limit int) ([]entity.Post, error)
	SearchByIDs(ctx context.Context, q string, ids []string) ([]entity.Post, error)
	UpdateByID(ctx context.Context, id string, data *entity.Post) error
	DeleteByID(ctx context.Context, id string) error
	IncreaseViews(ctx context.Context, id string) error
	IncreaseVotes(ctx context.Context, id string, delta int) error
	IncreaseAnswers(ctx context.Context, id string, delta int) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func preloadPost(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Omit("Author").Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	if err := preloadPost(xcontext.DB(ctx)).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) applyFilter(tx *gorm.DB, filter GetListPostFilter) *gorm.DB {
	if filter.Tag != "" {
		tx = tx.Where("id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).
				Model(&entity.PostTag{}).Select("post_id").Where("name=?", filter.Tag))
	}

	if len(filter.AnyTags) > 0 {
		tx = tx.Where("id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).
				Model(&entity.PostTag{}).Select("post_id").Where("name IN (?)", filter.AnyTags))
	}

	if filter.NoAnswers {
		tx = tx.Where("answers=0")
	}

	if filter.NoUpvotedAnswers {
		tx = tx.Where("(answers=0 OR votes<=0)")
	}

	if filter.HasBounty {
		tx = tx.Where("bounty>0")
	}

	if !filter.CreatedAfter.IsZero() {
		tx = tx.Where("created_at>=?", filter.CreatedAfter)
	}

	return tx
}

func (r *postRepository) GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error) {
	var result []entity.Post
	tx := r.applyFilter(preloadPost(xcontext.DB(ctx)).Model(&entity.Post{}), filter)

	for _, order := range filter.OrderBy {
		tx = tx.Order(order)
	}

	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) Count(ctx context.Context, filter GetListPostFilter) (int64, error) {
	var result int64
	tx := r.applyFilter(xcontext.DB(ctx).Model(&entity.Post{}), filter)
	if err := tx.Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *postRepository) GetListByAuthorID(ctx context.Context, authorID string, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := preloadPost(xcontext.DB(ctx)).
		Where("author_id=?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Search returns posts whose title or content contains q, case-insensitively.
func (r *postRepository) Search(ctx context.Context, q string, limit int) ([]entity.Post, error) {
	var result []entity.Post
	if err := searchPosts(xcontext.DB(ctx), q).Limit(limit).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// SearchByIDs is Search restricted to the given posts.
func (r *postRepository) SearchByIDs(ctx context.Context, q string, ids []string) ([]entity.Post, error) {
	var result []entity.Post
	if len(ids) == 0 {
		return result, nil
	}

	err := searchPosts(xcontext.DB(ctx), q).Where("id IN (?)", ids).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func searchPosts(tx *gorm.DB, q string) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	return tx.
		Preload("Author").
		Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(content) LIKE ? ESCAPE '!')", pattern, pattern).
		Order("created_at DESC").
		Order("id DESC")
}

// UpdateByID replaces the title, content and tags of a post.
func (r *postRepository) UpdateByID(ctx context.Context, id string, data *entity.Post) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Updates(map[string]any{
			"title":   data.Title,
			"content": data.Content,
		})
	if err := checkAffected(tx); err != nil {
		return err
	}

	if err := xcontext.DB(ctx).Where("post_id=?", id).Delete(&entity.PostTag{}).Error; err != nil {
		return err
	}

	if len(data.Tags) > 0 {
		for i := range data.Tags {
			data.Tags[i].PostID = id
		}

		if err := xcontext.DB(ctx).Create(&data.Tags).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *postRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id)
	if err := checkAffected(tx); err != nil {
		return err
	}

	return xcontext.DB(ctx).Where("post_id=?", id).Delete(&entity.PostTag{}).Error
}

func (r *postRepository) IncreaseViews(ctx context.Context, id string) error {
	return r.increase(ctx, id, "views", 1)
}

func (r *postRepository) IncreaseVotes(ctx context.Context, id string, delta int) error {
	return r.increase(ctx, id, "votes", delta)
}

func (r *postRepository) IncreaseAnswers(ctx context.Context, id string, delta int) error {
	return r.increase(ctx, id, "answers", delta)
}

// increase changes a counter without touching updated_at, so counters do not
// affect the "active" ordering.
func (r *postRepository) increase(ctx context.Context, id, column string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		UpdateColumn(column, gorm.Expr(column+"+?", delta))

	return checkAffected(tx)
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
