package migration

import (
	"context"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Post{},
		&entity.PostTag{},
		&entity.Comment{},
		&entity.Vote{},
		&entity.CommentVote{},
		&entity.Follow{},
	)
}
