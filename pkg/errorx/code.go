package errorx

import "net/http"

type Code int

var Unknown = Error{Code: Internal, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010
	MethodNotAllowed Code = 100011
)

var httpStatuses = map[Code]int{
	BadRequest:       http.StatusBadRequest,
	BadResponse:      http.StatusInternalServerError,
	PermissionDenied: http.StatusForbidden,
	NotFound:         http.StatusNotFound,
	Unauthenticated:  http.StatusUnauthorized,
	AlreadyExists:    http.StatusConflict,
	Internal:         http.StatusInternalServerError,
	Unavailable:      http.StatusServiceUnavailable,
	NotImplemented:   http.StatusNotImplemented,
	TooManyRequests:  http.StatusTooManyRequests,
	MethodNotAllowed: http.StatusMethodNotAllowed,
}

// HTTPStatus returns the status code sent to client along with this code.
func (c Code) HTTPStatus() int {
	if status, ok := httpStatuses[c]; ok {
		return status
	}

	return http.StatusInternalServerError
}
