package depot

import (
	"fmt"
	"reflect"
)

// LockedWorldError is returned by structural mutations attempted while a world is locked
type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked"
}

// ConfigurationError reports a registry or world misconfiguration, such as
// registering more component types than the configured maximum
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// InvalidHandleError reports access through a destroyed or never issued entity handle
type InvalidHandleError struct {
	Entity Entity
}

func (e InvalidHandleError) Error() string {
	return fmt.Sprintf("invalid entity handle: %v", e.Entity)
}

type ComponentExistsError struct {
	Entity Entity
	Type   reflect.Type
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %v: %v", e.Entity, e.Type)
}

type ComponentNotFoundError struct {
	Entity Entity
	Type   reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity %v: %v", e.Entity, e.Type)
}
