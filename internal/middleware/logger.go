package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/router"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		info := fmt.Sprintf("%s | %s | %d | %v", req.Method, req.URL.Path,
			router.Status(ctx), time.Since(router.StartTime(ctx)))

		if err := router.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) && errx.Code != errorx.Internal {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %v", info, err)
			}
			return
		}

		xcontext.Logger(ctx).Infof("%s", info)
	}
}
