package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/binbridge/core/algo"
	"github.com/huangsam/binbridge/schema"
)

// Sentinel errors matched with errors.Is.
var (
	ErrNotFound        = errors.New("name not found")
	ErrUnsupportedType = errors.New("unsupported object type")
	ErrWrongKind       = errors.New("wrong object kind")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrBinRange        = errors.New("bin range out of bounds")
	ErrInvalidFactor   = algo.ErrInvalidFactor
)

// NotFoundError reports a name that is not listed in a scope.
type NotFoundError struct {
	Scope []string
	Name  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q not found in scope %q", e.Name, scopeLabel(e.Scope))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// UnsupportedTypeError reports a listed name whose object kind is not modeled.
type UnsupportedTypeError struct {
	Name string
	Kind schema.Kind
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%q has unsupported kind %q", e.Name, e.Kind)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// WrongKindError reports an operation requested on an object of another kind.
type WrongKindError struct {
	Name string
	Want schema.Kind
	Got  schema.Kind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("%q is %s, want %s", e.Name, e.Got, e.Want)
}

func (e *WrongKindError) Unwrap() error { return ErrWrongKind }

// RangeError reports projection bounds outside an axis.
type RangeError struct {
	Axis  schema.Axis
	First int
	Last  int
	Bins  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bins %d..%d outside %s axis with %d bins", e.First, e.Last, e.Axis, e.Bins)
}

func (e *RangeError) Unwrap() error { return ErrBinRange }

func scopeLabel(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return strings.Join(path, "/")
}
