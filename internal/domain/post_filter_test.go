package domain

import (
	"testing"
	"time"

	"github.com/overflow-lab/backend/config"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func Test_buildListPostFilter(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	cfg := config.APIServerConfigs{DefaultLimit: 10, MaxLimit: 100}

	tests := []struct {
		name         string
		req          model.GetListPostRequest
		wantOrder    []string
		wantCreated  time.Time
		wantTag      string
		wantAnyTags  []string
		wantNoAnswer bool
		wantBounty   bool
		wantPage     listPage
	}{
		{
			name:      "defaults",
			req:       model.GetListPostRequest{},
			wantOrder: []string{"created_at DESC", "id DESC"},
			wantPage:  listPage{page: 1, limit: 10},
		},
		{
			name:         "unanswered tab uses sort",
			req:          model.GetListPostRequest{Tab: "unanswered", Sort: "highest"},
			wantOrder:    []string{"votes DESC", "id DESC"},
			wantNoAnswer: true,
			wantPage:     listPage{page: 1, limit: 10},
		},
		{
			name:       "bountied tab",
			req:        model.GetListPostRequest{Tab: "bountied"},
			wantOrder:  []string{"created_at DESC", "id DESC"},
			wantBounty: true,
			wantPage:   listPage{page: 1, limit: 10},
		},
		{
			name:        "week tab overrides sort",
			req:         model.GetListPostRequest{Tab: "week", Sort: "highest"},
			wantOrder:   []string{"created_at DESC", "id DESC"},
			wantCreated: now.Add(-7 * day),
			wantPage:    listPage{page: 1, limit: 10},
		},
		{
			name:        "month tab",
			req:         model.GetListPostRequest{Tab: "month"},
			wantOrder:   []string{"created_at DESC", "id DESC"},
			wantCreated: now.Add(-30 * day),
			wantPage:    listPage{page: 1, limit: 10},
		},
		{
			name:        "days old overrides tab bound",
			req:         model.GetListPostRequest{Tab: "month", DaysOld: 3},
			wantOrder:   []string{"created_at DESC", "id DESC"},
			wantCreated: now.Add(-3 * day),
			wantPage:    listPage{page: 1, limit: 10},
		},
		{
			name:      "active tab",
			req:       model.GetListPostRequest{Tab: "active"},
			wantOrder: []string{"updated_at DESC", "id DESC"},
			wantPage:  listPage{page: 1, limit: 10},
		},
		{
			name:      "trending tab",
			req:       model.GetListPostRequest{Tab: "trending"},
			wantOrder: []string{"views DESC", "created_at DESC", "id DESC"},
			wantPage:  listPage{page: 1, limit: 10},
		},
		{
			name:      "score tab",
			req:       model.GetListPostRequest{Tab: "score"},
			wantOrder: []string{"votes DESC", "id DESC"},
			wantPage:  listPage{page: 1, limit: 10},
		},
		{
			name:      "recent sort",
			req:       model.GetListPostRequest{Sort: "recent"},
			wantOrder: []string{"updated_at DESC", "id DESC"},
			wantPage:  listPage{page: 1, limit: 10},
		},
		{
			name:      "unknown sort",
			req:       model.GetListPostRequest{Sort: "random"},
			wantOrder: []string{"created_at DESC", "id DESC"},
			wantPage:  listPage{page: 1, limit: 10},
		},
		{
			name:      "tag",
			req:       model.GetListPostRequest{Tag: " go "},
			wantOrder: []string{"created_at DESC", "id DESC"},
			wantTag:   "go",
			wantPage:  listPage{page: 1, limit: 10},
		},
		{
			name:        "tag search replaces tag",
			req:         model.GetListPostRequest{Tag: "go", TagSearch: "redis or sql OR redis"},
			wantOrder:   []string{"created_at DESC", "id DESC"},
			wantAnyTags: []string{"redis", "sql"},
			wantPage:    listPage{page: 1, limit: 10},
		},
		{
			name:      "clamped limit",
			req:       model.GetListPostRequest{Page: 3, Limit: 1000},
			wantOrder: []string{"created_at DESC", "id DESC"},
			wantPage:  listPage{page: 3, limit: 100},
		},
		{
			name:      "negative page",
			req:       model.GetListPostRequest{Page: -2, Limit: 5},
			wantOrder: []string{"created_at DESC", "id DESC"},
			wantPage:  listPage{page: 1, limit: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, page := buildListPostFilter(&tt.req, cfg, now)
			require.Equal(t, tt.wantOrder, filter.OrderBy)
			require.Equal(t, tt.wantCreated, filter.CreatedAfter)
			require.Equal(t, tt.wantTag, filter.Tag)
			require.Equal(t, tt.wantAnyTags, filter.AnyTags)
			require.Equal(t, tt.wantNoAnswer, filter.NoAnswers)
			require.Equal(t, tt.wantBounty, filter.HasBounty)
			require.Equal(t, tt.wantPage, page)
			require.Equal(t, page.offset(), filter.Offset)
			require.Equal(t, page.limit, filter.Limit)
		})
	}
}

func Test_listPage_totalPages(t *testing.T) {
	page := listPage{page: 1, limit: 10}
	require.Equal(t, 0, page.totalPages(0))
	require.Equal(t, 1, page.totalPages(1))
	require.Equal(t, 1, page.totalPages(10))
	require.Equal(t, 2, page.totalPages(11))
}

func Test_normalizeTags(t *testing.T) {
	require.Equal(t, []string{"go", "sql"}, normalizeTags([]string{" go", "", "sql", "go ", "  "}))
	require.Equal(t, []string{}, normalizeTags(nil))
}
