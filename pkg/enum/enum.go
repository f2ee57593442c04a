package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
}

// New registers a value of an enum type. The optional name overrides the
// string representation used by ToEnum and ToString.
func New[T comparable](value T, name ...string) T {
	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := enumManager[t.Name()]; !ok {
		enumManager[t.Name()] = enum[T]{
			toEnum:   make(map[string]T),
			toString: make(map[T]string),
		}
	}

	s := fmt.Sprintf("%v", value)
	if len(name) > 0 {
		s = name[0]
	}

	enumManager[t.Name()].(enum[T]).toEnum[s] = value
	enumManager[t.Name()].(enum[T]).toString[value] = s
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT).Name()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

func ToString[T comparable](value T) string {
	e, ok := enumManager[reflect.TypeOf(value).Name()]
	if !ok {
		return ""
	}

	return e.(enum[T]).toString[value]
}
