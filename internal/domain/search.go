package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/overflow-lab/backend/internal/domain/search"
	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

const unknownAuthor = "unknown"

const reindexBatchSize = 500

// searchCandidateBatch is the number of index hits checked against the
// database at once.
const searchCandidateBatch = 200

type SearchDomain interface {
	Search(context.Context, *model.SearchPostRequest) (*model.SearchPostResponse, error)
	Reindex(ctx context.Context) (int, error)
}

type searchDomain struct {
	postRepo repository.PostRepository

	// searchIndex is nil when posts are searched by the database.
	searchIndex search.Index
}

func NewSearchDomain(postRepo repository.PostRepository, searchIndex search.Index) *searchDomain {
	return &searchDomain{
		postRepo:    postRepo,
		searchIndex: searchIndex,
	}
}

func (d *searchDomain) Search(
	ctx context.Context, req *model.SearchPostRequest,
) (*model.SearchPostResponse, error) {
	q := strings.TrimSpace(req.Q)
	if q == "" {
		return nil, errorx.New(errorx.BadRequest, "Search query is required")
	}

	cfg := xcontext.Configs(ctx).Search

	var posts []entity.Post
	var err error
	if d.searchIndex != nil {
		posts, err = d.searchByIndex(ctx, q, cfg.MaxResults)
	} else {
		posts, err = d.postRepo.Search(ctx, q, cfg.MaxResults)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search posts: %v", err)
		return nil, errorx.Unknown
	}

	result := model.SearchPostResponse{}
	for _, p := range posts {
		author := p.Author.Username
		if author == "" {
			author = unknownAuthor
		}

		result = append(result, model.SearchResult{
			ID:        p.ID,
			Title:     p.Title,
			Content:   truncate(p.Content, cfg.PreviewLength),
			Author:    author,
			CreatedAt: p.CreatedAt.Format(model.DefaultTimeLayout),
			Views:     p.Views,
		})
	}

	return &result, nil
}

// searchByIndex narrows the posts with the index, then keeps the candidates
// which contain q in the database. Queries the index cannot narrow are
// searched by the database only.
func (d *searchDomain) searchByIndex(ctx context.Context, q string, limit int) ([]entity.Post, error) {
	result := []entity.Post{}
	for offset := 0; len(result) < limit; offset += searchCandidateBatch {
		ids, err := d.searchIndex.Search(search.PostDoc, q, []string{"-CreatedAt"}, offset, searchCandidateBatch)
		if err != nil {
			if errors.Is(err, search.ErrUnsupportedQuery) {
				return d.postRepo.Search(ctx, q, limit)
			}

			return nil, err
		}

		posts, err := d.postRepo.SearchByIDs(ctx, q, ids)
		if err != nil {
			return nil, err
		}

		result = append(result, posts...)
		if len(ids) < searchCandidateBatch {
			break
		}
	}

	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// Reindex rebuilds the search index from all posts in database. It returns
// the number of indexed posts.
func (d *searchDomain) Reindex(ctx context.Context) (int, error) {
	if d.searchIndex == nil {
		return 0, errorx.New(errorx.Unavailable, "Search index is not enabled")
	}

	total := 0
	for offset := 0; ; offset += reindexBatchSize {
		posts, err := d.postRepo.GetList(ctx, repository.GetListPostFilter{
			OrderBy: []string{"created_at ASC", "id ASC"},
			Offset:  offset,
			Limit:   reindexBatchSize,
		})
		if err != nil {
			return total, err
		}

		for i := range posts {
			if err := indexPost(d.searchIndex, &posts[i]); err != nil {
				return total, err
			}

			total++
		}

		if len(posts) < reindexBatchSize {
			return total, nil
		}
	}
}

func indexPost(index search.Index, post *entity.Post) error {
	return index.Index(search.PostDoc, post.ID, search.PostData{
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	})
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
