package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[reflect.Type]any{}

type enum[T comparable] struct {
	toEnum map[string]T
}

// New registers value as a member of its type and returns it. It is supposed
// to be called when initializing package-level variables.
func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[t].(enum[T]).toEnum[fmt.Sprint(value)] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}
