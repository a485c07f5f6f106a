package domain

import (
	"strings"
	"time"

	"github.com/overflow-lab/backend/config"
	"github.com/overflow-lab/backend/internal/model"
	"github.com/overflow-lab/backend/internal/repository"
	"golang.org/x/exp/slices"
)

const day = 24 * time.Hour

var (
	orderNewest   = []string{"created_at DESC"}
	orderActive   = []string{"updated_at DESC"}
	orderViews    = []string{"views DESC"}
	orderVotes    = []string{"votes DESC"}
	orderTrending = []string{"views DESC", "created_at DESC"}
)

// tabOrders are the tabs which decide the ordering by themselves. Other tabs
// are ordered by the sort parameter.
var tabOrders = map[string][]string{
	"week":     orderNewest,
	"month":    orderNewest,
	"active":   orderActive,
	"frequent": orderViews,
	"score":    orderVotes,
	"trending": orderTrending,
}

var sortOrders = map[string][]string{
	"newest":   orderNewest,
	"recent":   orderActive,
	"activity": orderActive,
	"highest":  orderVotes,
	"frequent": orderViews,
	"trending": orderTrending,
}

type listPage struct {
	page  int
	limit int
}

func (p listPage) offset() int {
	return (p.page - 1) * p.limit
}

func (p listPage) totalPages(total int64) int {
	if total <= 0 {
		return 0
	}

	return int((total + int64(p.limit) - 1) / int64(p.limit))
}

func normalizePage(page, limit int, cfg config.APIServerConfigs) listPage {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = cfg.DefaultLimit
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	return listPage{page: page, limit: limit}
}

// buildListPostFilter translates the listing parameters into a repository
// filter. Relative dates are computed from now.
func buildListPostFilter(
	req *model.GetListPostRequest, cfg config.APIServerConfigs, now time.Time,
) (repository.GetListPostFilter, listPage) {
	page := normalizePage(req.Page, req.Limit, cfg)
	filter := repository.GetListPostFilter{
		NoAnswers:        req.NoAnswers,
		NoUpvotedAnswers: req.NoUpvotedAnswers,
		HasBounty:        req.HasBounty,
		Offset:           page.offset(),
		Limit:            page.limit,
	}

	switch req.Tab {
	case "unanswered":
		filter.NoAnswers = true
	case "bountied":
		filter.HasBounty = true
	case "week":
		filter.CreatedAfter = now.Add(-7 * day)
	case "month":
		filter.CreatedAfter = now.Add(-30 * day)
	}

	if tags := splitTagSearch(req.TagSearch); len(tags) > 0 {
		filter.AnyTags = tags
	} else {
		filter.Tag = strings.TrimSpace(req.Tag)
	}

	if req.DaysOld > 0 {
		filter.CreatedAfter = now.Add(-time.Duration(req.DaysOld) * day)
	}

	order, ok := tabOrders[req.Tab]
	if !ok {
		order, ok = sortOrders[req.Sort]
		if !ok {
			order = orderNewest
		}
	}

	filter.OrderBy = append(slices.Clone(order), "id DESC")
	return filter, page
}

// splitTagSearch splits a search like "go or redis sql" into distinct tags.
func splitTagSearch(s string) []string {
	tags := []string{}
	for _, word := range strings.Fields(s) {
		if strings.EqualFold(word, "or") || slices.Contains(tags, word) {
			continue
		}

		tags = append(tags, word)
	}

	return tags
}

// normalizeTags trims the tags and drops blank and repeated ones, keeping the
// original order.
func normalizeTags(tags []string) []string {
	result := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(result, tag) {
			continue
		}

		result = append(result, tag)
	}

	return result
}
