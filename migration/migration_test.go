package migration_test

import (
	"testing"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/migration"
	"github.com/overflow-lab/backend/pkg/testutil"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestMigrators(t *testing.T) {
	ctx := testutil.MockContext()

	for version, migrator := range migration.Migrators {
		require.NoError(t, migrator(ctx), version)
	}

	require.True(t, xcontext.DB(ctx).Migrator().HasColumn(&entity.Post{}, "bounty"))
	require.True(t, xcontext.DB(ctx).Migrator().HasIndex(&entity.Vote{}, "idx_votes_user_post"))
}
