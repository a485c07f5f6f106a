package domain

import (
	"context"

	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

const activityLimit = 100

// requireUserID returns the id of the authenticated user, or an
// Unauthenticated error for anonymous requests.
func requireUserID(ctx context.Context) (string, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return "", errorx.New(errorx.Unauthenticated, "Authentication required")
	}

	return userID, nil
}

func commitTransaction(ctx context.Context) error {
	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return errorx.Unknown
	}

	return nil
}
