package migration

import (
	"context"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

// migrate0001 adds the bounty column to databases created before bounties
// existed.
func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()
	if migrator.HasColumn(&entity.Post{}, "bounty") {
		return nil
	}

	return migrator.AddColumn(&entity.Post{}, "bounty")
}
