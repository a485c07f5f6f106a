package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/overflow-lab/backend/pkg/errorx"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// StatusResponse is implemented by responses which are not sent with
// 200 OK, for example 201 Created.
type StatusResponse interface {
	HTTPStatus() int
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func writeError(c *gin.Context, err error) int {
	status := errorx.HTTPStatus(err)
	c.AbortWithStatusJSON(status, newErrorResponse(err))
	return status
}

func writeResponse(c *gin.Context, resp any) int {
	status := http.StatusOK
	if s, ok := resp.(StatusResponse); ok {
		status = s.HTTPStatus()
	}

	c.JSON(status, newResponse(resp))
	return status
}
