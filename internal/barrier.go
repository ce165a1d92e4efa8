// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"fmt"
	"sync/atomic"
)

// Barrier is a fixed-size set of independently settleable slots. All slots
// exist from construction on, so a producer can settle slot i while a
// consumer is already waiting on an aggregate of the whole set.
//
// The slot count is fixed for the barrier's lifetime. Each slot settles at
// most once; settling one slot says nothing about any other.
type Barrier[T any] struct {
	slots []*Promise[T]
}

// NewBarrier creates a barrier with length slots, all pending. A negative
// length is rejected with ErrInvalidLength; zero is a valid, empty barrier.
func NewBarrier[T any](length int) (*Barrier[T], error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	slots := make([]*Promise[T], length)
	for i := range slots {
		slots[i] = NewPromise[T]()
	}
	return &Barrier[T]{slots: slots}, nil
}

// Len returns the slot count.
func (b *Barrier[T]) Len() int {
	return len(b.slots)
}

func (b *Barrier[T]) slot(index int) (*Promise[T], error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIndex, index)
	}
	if index >= len(b.slots) {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(b.slots))
	}
	return b.slots[index], nil
}

// Slot returns the future for one slot, so a caller can wait on or chain
// from a single position without touching the rest of the barrier.
func (b *Barrier[T]) Slot(index int) (Future[T], error) {
	s, err := b.slot(index)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Resolve fulfills the slot at index with value. Index validation errors are
// returned synchronously; a slot that is already settled keeps its first
// outcome and Resolve reports no error.
func (b *Barrier[T]) Resolve(index int, value T) error {
	s, err := b.slot(index)
	if err != nil {
		return err
	}
	s.Resolve(value)
	return nil
}

// Reject settles the slot at index as failed. Validation and double-settle
// behave as in Resolve.
func (b *Barrier[T]) Reject(index int, err error) error {
	s, serr := b.slot(index)
	if serr != nil {
		return serr
	}
	s.Reject(err)
	return nil
}

// All returns a future over the whole barrier. It fulfills with the slot
// values in slot order once every slot has fulfilled, and rejects with the
// first rejection to land as soon as any slot rejects. An empty barrier
// fulfills immediately with an empty slice. Each call returns a fresh
// future, settled slots included.
func (b *Barrier[T]) All() Future[[]T] {
	out := NewPromise[[]T]()
	if len(b.slots) == 0 {
		out.Resolve([]T{})
		return out
	}
	values := make([]T, len(b.slots))
	var remaining atomic.Int64
	remaining.Store(int64(len(b.slots)))
	for i, s := range b.slots {
		s.OnSettled(func(value T, err error) {
			if err != nil {
				out.Reject(err)
				return
			}
			values[i] = value
			if remaining.Add(-1) == 0 {
				out.Resolve(values)
			}
		})
	}
	return out
}

// Race returns a future that adopts the outcome of whichever slot settles
// first, fulfilled or rejected. On an empty barrier the returned future
// never settles; waiters fall back to their context.
func (b *Barrier[T]) Race() Future[T] {
	out := NewPromise[T]()
	for _, s := range b.slots {
		s.OnSettled(func(value T, err error) {
			if err != nil {
				out.Reject(err)
				return
			}
			out.Resolve(value)
		})
	}
	return out
}
