package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/overflow-lab/backend/pkg/errorx"
	"github.com/overflow-lab/backend/pkg/prometheus"
	"github.com/overflow-lab/backend/pkg/router"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

// Prometheus records the count and the duration of requests, labeled by the
// route pattern and the error code (0 on success, -1 on unknown errors).
func Prometheus(metrics *prometheus.Metrics) router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		code := 0
		if err := router.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		metrics.Observe(req.Method, router.Route(ctx), fmt.Sprint(code), time.Since(router.StartTime(ctx)))
	}
}
