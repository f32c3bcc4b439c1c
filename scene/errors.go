package scene

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotImplemented is returned by Draw on a scene object that has no
// concrete drawer variant.
var ErrNotImplemented = errors.New("scene: draw not implemented")

// ErrSerialization is returned when a scene object is serialized directly.
// Scene objects are only serializable as part of a whole-scene export.
var ErrSerialization = errors.New("scene: serialization outside a scene export is not allowed")

// NotRegisteredError is returned when no scene object variant is registered
// for an item type / context pair.
type NotRegisteredError struct {
	ItemType reflect.Type
	Context  string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("scene: no scene object registered for item type %v in context %q", e.ItemType, e.Context)
}

// ContextMismatchError is returned by Add when an explicitly supplied
// context differs from the parent's context.
type ContextMismatchError struct {
	Parent string
	Child  string
}

func (e *ContextMismatchError) Error() string {
	return fmt.Sprintf("scene: child context should be the same as parent context: %q != %q", e.Child, e.Parent)
}
