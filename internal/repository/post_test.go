package repository_test

import (
	"testing"
	"time"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func postIDs(posts []entity.Post) []string {
	ids := []string{}
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	return ids
}

func Test_postRepository_GetList(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewPostRepository()

	tests := []struct {
		name   string
		filter repository.GetListPostFilter
		want   []string
	}{
		{
			name:   "newest first",
			filter: repository.GetListPostFilter{OrderBy: []string{"created_at DESC", "id DESC"}},
			want:   []string{testutil.Post1.ID, testutil.Post2.ID, testutil.Post3.ID},
		},
		{
			name:   "by tag",
			filter: repository.GetListPostFilter{Tag: "go", OrderBy: []string{"created_at DESC"}},
			want:   []string{testutil.Post1.ID, testutil.Post3.ID},
		},
		{
			name:   "any tags",
			filter: repository.GetListPostFilter{AnyTags: []string{"redis", "sql"}, OrderBy: []string{"created_at DESC"}},
			want:   []string{testutil.Post2.ID, testutil.Post3.ID},
		},
		{
			name:   "no answers",
			filter: repository.GetListPostFilter{NoAnswers: true, OrderBy: []string{"views DESC"}},
			want:   []string{testutil.Post2.ID, testutil.Post3.ID},
		},
		{
			name:   "has bounty",
			filter: repository.GetListPostFilter{HasBounty: true},
			want:   []string{testutil.Post2.ID},
		},
		{
			name: "created after",
			filter: repository.GetListPostFilter{
				CreatedAfter: time.Now().Add(-7 * 24 * time.Hour),
			},
			want: []string{testutil.Post1.ID},
		},
		{
			name:   "paginated",
			filter: repository.GetListPostFilter{OrderBy: []string{"created_at DESC"}, Offset: 1, Limit: 1},
			want:   []string{testutil.Post2.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.GetList(ctx, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, postIDs(posts))

			count, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			if tt.filter.Limit == 0 {
				require.Equal(t, int64(len(tt.want)), count)
			}
		})
	}
}

func Test_postRepository_GetByID_PreloadsAuthorAndTags(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewPostRepository()

	post, err := repo.GetByID(ctx, testutil.Post3.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Username, post.Author.Username)
	require.Equal(t, []string{"sql", "go"}, post.TagNames())

	_, err = repo.GetByID(ctx, "unknown")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_postRepository_Search(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewPostRepository()

	posts, err := repo.Search(ctx, "GORM", 50)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Post1.ID}, postIDs(posts))

	// Wildcards are matched literally.
	posts, err = repo.Search(ctx, "100%", 50)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Post2.ID}, postIDs(posts))

	posts, err = repo.Search(ctx, "_", 50)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Post3.ID}, postIDs(posts))
}

func Test_postRepository_IncreaseViews_KeepsUpdatedAt(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewPostRepository()

	before, err := repo.GetByID(ctx, testutil.Post2.ID)
	require.NoError(t, err)

	require.NoError(t, repo.IncreaseViews(ctx, testutil.Post2.ID))

	after, err := repo.GetByID(ctx, testutil.Post2.ID)
	require.NoError(t, err)
	require.Equal(t, before.Views+1, after.Views)
	require.True(t, before.UpdatedAt.Equal(after.UpdatedAt))

	require.ErrorIs(t, repo.IncreaseViews(ctx, "unknown"), gorm.ErrRecordNotFound)
}

func Test_postRepository_UpdateByID_ReplacesTags(t *testing.T) {
	ctx := testutil.NewFixtureContext()
	repo := repository.NewPostRepository()

	err := repo.UpdateByID(ctx, testutil.Post1.ID, &entity.Post{
		Title:   "new title",
		Content: "new content",
		Tags:    []entity.PostTag{{Position: 0, Name: "sqlite"}},
	})
	require.NoError(t, err)

	post, err := repo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, "new title", post.Title)
	require.Equal(t, []string{"sqlite"}, post.TagNames())
}
