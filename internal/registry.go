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
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// Status labels one side of a settled outcome.
type Status string

const (
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Outcome records how a tracked future settled. Value is meaningful when
// Status is StatusFulfilled, Err when it is StatusRejected.
type Outcome[T any] struct {
	Status Status
	Value  T
	Err    error
}

// RegistryOptions configures a Registry. The zero value and nil are both
// valid.
type RegistryOptions struct {
	// Logger receives debug events for ticket grants and releases.
	// Defaults to slog.Default.
	Logger *slog.Logger
}

// Registry tracks in-flight futures under monotonically increasing tickets.
// A future stays registered until it settles, then removes itself; the
// registry never holds on to settled work.
type Registry[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]Future[T]
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. A nil opts is allowed.
func NewRegistry[T any](opts *RegistryOptions) *Registry[T] {
	if opts == nil {
		opts = &RegistryOptions{}
	}
	return &Registry[T]{
		pending: make(map[uint64]Future[T]),
		logger:  defaultLogger(opts.Logger),
	}
}

// Add registers f under the next ticket. Tickets start at zero, grow by one
// per Add, and are never reused, so a ticket identifies one registration
// even after the entry is gone. The future evicts itself when it settles;
// adding an already settled future grants a ticket that is released on the
// next callback turn. A nil future panics.
func (r *Registry[T]) Add(f Future[T]) {
	if f == nil {
		panic("future: Add called with nil future")
	}
	r.mu.Lock()
	ticket := r.nextID
	r.nextID++
	r.pending[ticket] = f
	r.mu.Unlock()

	r.logger.Debug("future registered", "ticket", ticket)

	f.OnSettled(func(_ T, err error) {
		r.mu.Lock()
		delete(r.pending, ticket)
		r.mu.Unlock()
		r.logger.Debug("future settled, ticket released", "ticket", ticket, "rejected", err != nil)
	})
}

// Pending returns the number of registered futures that have not yet
// released their tickets.
func (r *Registry[T]) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// AllSettled returns a future over a snapshot of the currently registered
// futures. It fulfills with one Outcome per snapshot entry, in ticket order,
// once each has settled. Rejections are collected, not propagated, so the
// returned future never rejects. Futures added after the call are not
// waited on; an empty registry fulfills immediately with an empty slice.
func (r *Registry[T]) AllSettled() Future[[]Outcome[T]] {
	r.mu.Lock()
	tickets := make([]uint64, 0, len(r.pending))
	for ticket := range r.pending {
		tickets = append(tickets, ticket)
	}
	slices.Sort(tickets)
	tracked := make([]Future[T], len(tickets))
	for i, ticket := range tickets {
		tracked[i] = r.pending[ticket]
	}
	r.mu.Unlock()

	out := NewPromise[[]Outcome[T]]()
	if len(tracked) == 0 {
		out.Resolve([]Outcome[T]{})
		return out
	}
	outcomes := make([]Outcome[T], len(tracked))
	var remaining atomic.Int64
	remaining.Store(int64(len(tracked)))
	for i, f := range tracked {
		f.OnSettled(func(value T, err error) {
			if err != nil {
				outcomes[i] = Outcome[T]{Status: StatusRejected, Err: err}
			} else {
				outcomes[i] = Outcome[T]{Status: StatusFulfilled, Value: value}
			}
			if remaining.Add(-1) == 0 {
				out.Resolve(outcomes)
			}
		})
	}
	return out
}
