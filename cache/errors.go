package cache

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/IvanBrykalov/evictcache/policy"
)

var (
	// ErrInvalidConfiguration is returned by constructors for a non-positive
	// capacity, an unknown policy kind or a nil policy.
	ErrInvalidConfiguration = policy.ErrInvalidConfiguration

	// ErrInvalidArgument is returned when a nil key, value or loader is passed
	// to an operation. The cache state is untouched.
	ErrInvalidArgument = errors.New("cache: invalid argument")

	// ErrNoLoader is returned by GetOrLoad/GetAsync when loader is nil.
	ErrNoLoader = fmt.Errorf("%w: no loader provided", ErrInvalidArgument)

	// ErrLoadFailure matches every *LoadError via errors.Is.
	ErrLoadFailure = errors.New("cache: load failure")
)

// LoadError reports a failed loader call. Nothing is stored for Key.
type LoadError struct {
	Key any
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cache: load %v: %v", e.Key, e.Err)
}

// Unwrap returns the loader's original error.
func (e *LoadError) Unwrap() error { return e.Err }

// Is reports true for ErrLoadFailure.
func (e *LoadError) Is(target error) bool { return target == ErrLoadFailure }

// nillable reports whether values of T can be nil (pointers, maps, slices,
// channels, funcs, interfaces). Non-nillable types skip the reflect check.
func nillable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// isNil reports whether v is nil or holds a nil pointer/map/chan/func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
