package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/overflow-lab/backend/internal/domain/search"
	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/overflow-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

type PostDomain interface {
	GetList(context.Context, *model.GetListPostRequest) (*model.GetListPostResponse, error)
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	Update(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
}

type postDomain struct {
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository
	voteRepo        repository.VoteRepository
	commentVoteRepo repository.CommentVoteRepository
	followRepo      repository.FollowRepository

	// redisClient is nil when views are not de-duplicated.
	redisClient xredis.Client

	// searchIndex is nil when posts are searched by the database.
	searchIndex search.Index
}

func NewPostDomain(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	commentVoteRepo repository.CommentVoteRepository,
	followRepo repository.FollowRepository,
	redisClient xredis.Client,
	searchIndex search.Index,
) *postDomain {
	return &postDomain{
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		voteRepo:        voteRepo,
		commentVoteRepo: commentVoteRepo,
		followRepo:      followRepo,
		redisClient:     redisClient,
		searchIndex:     searchIndex,
	}
}

func (d *postDomain) GetList(
	ctx context.Context, req *model.GetListPostRequest,
) (*model.GetListPostResponse, error) {
	filter, page := buildListPostFilter(req, xcontext.Configs(ctx).ApiServer, time.Now())

	total, err := d.postRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of posts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetListPostResponse{
		Posts:       model.ConvertPosts(posts),
		CurrentPage: page.page,
		TotalPages:  page.totalPages(total),
		TotalPosts:  total,
	}, nil
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	title, content, err := validatePostContent(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		Title:    title,
		Content:  content,
		AuthorID: userID,
		Tags:     toPostTags(req.Tags),
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.getPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	d.index(ctx, created)
	return &model.CreatePostResponse{Post: model.ConvertPost(created)}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.getPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if viewKey, ok := d.shouldCountView(ctx, post.ID); ok {
		if err := d.postRepo.IncreaseViews(ctx, post.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase views: %v", err)
			d.releaseView(ctx, viewKey)
			return nil, errorx.Unknown
		}

		post.Views++
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments of post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPostResponse{
		Post:     model.ConvertPost(post),
		Comments: model.ConvertComments(comments),
	}, nil
}

func (d *postDomain) Update(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	post, err := d.getOwnPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	title, content, err := validatePostContent(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.postRepo.UpdateByID(ctx, post.ID, &entity.Post{
		Title:   title,
		Content: content,
		Tags:    toPostTags(req.Tags),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitTransaction(ctx); err != nil {
		return nil, err
	}

	updated, err := d.getPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	d.index(ctx, updated)
	return &model.UpdatePostResponse{Post: model.ConvertPost(updated)}, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.getOwnPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.commentVoteRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment votes of post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments of post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.voteRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete votes of post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.followRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follows of post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.DeleteByID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	if err := commitTransaction(ctx); err != nil {
		return nil, err
	}

	if d.searchIndex != nil {
		if err := d.searchIndex.Delete(search.PostDoc, post.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot remove post %s from search index: %v", post.ID, err)
		}
	}

	return &model.DeletePostResponse{}, nil
}

// index writes the committed post to the search index. The database stays the
// source of truth, a failure is only logged and repaired by the reindex
// command.
func (d *postDomain) index(ctx context.Context, post *entity.Post) {
	if d.searchIndex == nil {
		return
	}

	if err := indexPost(d.searchIndex, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot index post %s: %v", post.ID, err)
	}
}

func (d *postDomain) getPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Post not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return post, nil
}

// getOwnPost returns the post only if the requester is its author.
func (d *postDomain) getOwnPost(ctx context.Context, id string) (*entity.Post, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return nil, err
	}

	post, err := d.getPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can modify this post")
	}

	return post, nil
}

// shouldCountView reports whether this read increases the views of the post.
// A viewer is counted once per dedup window when redis is available. The
// returned key is the redis key stored by this call, empty if none.
func (d *postDomain) shouldCountView(ctx context.Context, postID string) (string, bool) {
	window := xcontext.Configs(ctx).View.DedupWindow
	if d.redisClient == nil || window <= 0 {
		return "", true
	}

	viewer := viewerKey(ctx)
	if viewer == "" {
		return "", true
	}

	key := fmt.Sprintf("view:%s:%s", postID, viewer)
	ok, err := d.redisClient.SetNX(ctx, key, "1", window)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check view of %s: %v", key, err)
		return "", true
	}

	if !ok {
		return "", false
	}

	return key, true
}

// releaseView removes a view key whose view could not be counted, so the next
// read of the viewer is counted.
func (d *postDomain) releaseView(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := d.redisClient.Del(ctx, key); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot release view %s: %v", key, err)
	}
}

// viewerKey identifies the reader by user id, or by client ip for anonymous
// readers.
func viewerKey(ctx context.Context) string {
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		return "user:" + userID
	}

	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	if host == "" {
		return ""
	}

	return "ip:" + host
}

// validatePostContent returns the trimmed title. Content is kept as is since
// leading spaces may be part of a code block.
func validatePostContent(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return "", "", errorx.New(errorx.BadRequest, "Title and content are required")
	}

	return title, content, nil
}

func toPostTags(tags []string) []entity.PostTag {
	result := []entity.PostTag{}
	for i, name := range normalizeTags(tags) {
		result = append(result, entity.PostTag{Position: i, Name: name})
	}

	return result
}
