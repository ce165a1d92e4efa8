package future

import (
	"github.com/ngnhng/settle/internal"
)

// Barrier is a fixed-size collection of slots, each one an independently
// settleable future addressed by index. The size is set at construction and
// never changes.
//
// Use All to wait for the whole set with slot-ordered results, Race to
// adopt the first settlement, or Slot to work with one position directly.
type Barrier[T any] = internal.Barrier[T]

// NewBarrier creates a barrier with length pending slots. A negative length
// returns ErrInvalidLength; length zero is a valid empty barrier whose All
// fulfills immediately and whose Race never settles.
func NewBarrier[T any](length int) (*Barrier[T], error) {
	return internal.NewBarrier[T](length)
}
