package future

import (
	"github.com/ngnhng/settle/internal"
)

// Status labels how a tracked future settled.
type Status = internal.Status

const (
	StatusFulfilled = internal.StatusFulfilled
	StatusRejected  = internal.StatusRejected
)

// Outcome is one settled result collected by Registry.AllSettled.
type Outcome[T any] = internal.Outcome[T]

// RegistryOptions configures a Registry. Nil is a valid value.
type RegistryOptions = internal.RegistryOptions

// Registry tracks in-flight futures under monotonically increasing tickets
// and drops each entry the moment it settles. AllSettled waits for a
// snapshot of the current entries and reports every outcome, rejections
// included, without itself rejecting.
type Registry[T any] = internal.Registry[T]

// NewRegistry creates an empty registry. Pass nil for defaults.
func NewRegistry[T any](opts *RegistryOptions) *Registry[T] {
	return internal.NewRegistry[T](opts)
}
