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

package future

import (
	"github.com/ngnhng/settle/internal"
)

// Future is the read side of a one-shot settleable value.
//
// A Future is pending until it settles, and it settles exactly once: either
// fulfilled with a value or rejected with an error. Every method observes
// that single outcome.
//
//	f := start(ctx)
//
//	select {
//	case <-f.Done():
//		v, err := f.Get(ctx)
//		...
//	case <-other:
//		...
//	}
//
// Get blocks until settlement or until the caller's context ends; a settled
// future answers immediately regardless of the context's state.
type Future[T any] = internal.Future[T]

// Promise is a Future settled from the outside: Resolve and Reject are
// ordinary methods, so any holder of the promise can decide its outcome.
// The zero value is not usable; call NewPromise.
type Promise[T any] = internal.Promise[T]

// NewPromise returns a new pending promise.
func NewPromise[T any]() *Promise[T] {
	return internal.NewPromise[T]()
}

// Resolved returns a future already fulfilled with value.
func Resolved[T any](value T) Future[T] {
	return internal.Resolved(value)
}

// Rejected returns a future already rejected with err.
func Rejected[T any](err error) Future[T] {
	return internal.Rejected[T](err)
}

// Then derives a new future by mapping f's value through fn. A rejection of
// f skips fn and rejects the derived future with the same error; an error
// returned by fn rejects it too.
func Then[T, U any](f Future[T], fn func(value T) (U, error)) Future[U] {
	return internal.Then(f, fn)
}
