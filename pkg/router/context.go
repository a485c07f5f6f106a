package router

import (
	"context"
	"time"
)

type requestStateKey struct{}

type requestState struct {
	startTime time.Time
	route     string
	status    int
	response  any
	err       error
}

// valueContext carries the cancellation of the http request and falls back to
// the router values for lookups.
type valueContext struct {
	context.Context
	values context.Context
}

func (c valueContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.values.Value(key)
}

func getState(ctx context.Context) *requestState {
	state, _ := ctx.Value(requestStateKey{}).(*requestState)
	if state == nil {
		return &requestState{}
	}

	return state
}

// Response returns the object which will be sent to client. It is only
// available in After middlewares and closers.
func Response(ctx context.Context) any {
	return getState(ctx).response
}

// Error returns the error of the handler or middlewares. It is only available
// in closers.
func Error(ctx context.Context) error {
	return getState(ctx).err
}

// Status returns the http status written to client. It is only available in
// closers.
func Status(ctx context.Context) int {
	return getState(ctx).status
}

func StartTime(ctx context.Context) time.Time {
	return getState(ctx).startTime
}

// Route returns the pattern of the matched route, for example /posts/:id.
func Route(ctx context.Context) string {
	return getState(ctx).route
}
