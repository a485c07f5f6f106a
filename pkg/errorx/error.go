package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is reports whether err is an Error with the given code.
func Is(err error, code Code) bool {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code == code
	}

	return false
}

// HTTPStatus returns the http status of err. Errors which are not Error are
// always internal errors.
func HTTPStatus(err error) int {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code.HTTPStatus()
	}

	return Unknown.Code.HTTPStatus()
}
