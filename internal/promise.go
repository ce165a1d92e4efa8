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
	"context"
	"sync"
)

var _ Future[any] = (*Promise[any])(nil)

// Future is the read side of a one-shot settleable value.
//
// A Future is either pending or settled. Settling is irreversible: a future
// settles at most once, as fulfilled with a value or rejected with an error,
// and every read observes that same outcome forever after.
type Future[T any] interface {
	// Get blocks until the future settles or ctx ends, whichever comes
	// first. A settled future returns its outcome without consulting ctx.
	Get(ctx context.Context) (T, error)

	// Done returns a channel that is closed when the future settles.
	Done() <-chan struct{}

	// Ready reports whether the future has settled.
	Ready() bool

	// OnSettled registers fn to run once the future settles. Callbacks on
	// the same future run one at a time, in registration order, and never
	// synchronously inside the call that registered or settled them. A nil
	// fn panics.
	OnSettled(fn func(value T, err error))
}

// Promise is a Future whose outcome is supplied from outside: any holder may
// call Resolve or Reject. The write side and the read side are one value, so
// a promise is never observable without its settle operations.
type Promise[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	settled  bool
	value    T
	err      error
	queue    []func(value T, err error)
	draining bool
}

// NewPromise returns a pending promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		done: make(chan struct{}),
	}
}

// Resolve fulfills the promise with value. The first settle call wins;
// Resolve reports whether this call was it. Losing calls change nothing.
func (p *Promise[T]) Resolve(value T) bool {
	return p.settle(value, nil)
}

// Reject settles the promise as failed. A nil err is replaced with
// ErrNilRejection so the rejection is still distinguishable from success.
// The first settle call wins; Reject reports whether this call was it.
func (p *Promise[T]) Reject(err error) bool {
	if err == nil {
		err = ErrNilRejection
	}
	var zero T
	return p.settle(zero, err)
}

func (p *Promise[T]) settle(value T, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.settled {
		return false
	}
	p.settled = true
	p.value = value
	p.err = err
	// Outcome fields are written before done is closed; readers that wait
	// on Done may read them without the lock.
	close(p.done)
	p.startDrain()
	return true
}

// Get implements Future.
func (p *Promise[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-p.done:
	default:
		select {
		case <-p.done:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
	return p.value, p.err
}

// Done implements Future.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Ready implements Future.
func (p *Promise[T]) Ready() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// OnSettled implements Future.
func (p *Promise[T]) OnSettled(fn func(value T, err error)) {
	if fn == nil {
		panic("future: OnSettled called with nil callback")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, fn)
	if p.settled {
		p.startDrain()
	}
}

// startDrain hands the callback queue to a single worker goroutine. Callers
// must hold mu. At most one drain worker exists at a time, which is what
// keeps callbacks ordered.
func (p *Promise[T]) startDrain() {
	if p.draining || len(p.queue) == 0 {
		return
	}
	p.draining = true
	go p.drain()
}

func (p *Promise[T]) drain() {
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.draining = false
			p.mu.Unlock()
			return
		}
		batch := p.queue
		p.queue = nil
		value, err := p.value, p.err
		p.mu.Unlock()

		for _, fn := range batch {
			fn(value, err)
		}
	}
}

// Resolved returns a future that is already fulfilled with value.
func Resolved[T any](value T) Future[T] {
	p := NewPromise[T]()
	p.Resolve(value)
	return p
}

// Rejected returns a future that is already rejected with err.
func Rejected[T any](err error) Future[T] {
	p := NewPromise[T]()
	p.Reject(err)
	return p
}

// Then derives a future from f. If f fulfills, fn maps its value; an error
// from fn rejects the result. If f rejects, the rejection passes through
// untouched and fn never runs.
func Then[T, U any](f Future[T], fn func(value T) (U, error)) Future[U] {
	if fn == nil {
		panic("future: Then called with nil callback")
	}
	out := NewPromise[U]()
	f.OnSettled(func(value T, err error) {
		if err != nil {
			out.Reject(err)
			return
		}
		mapped, err := fn(value)
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(mapped)
	})
	return out
}
