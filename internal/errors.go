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
	"errors"
)

var (
	// ErrInvalidLength is returned when a barrier is constructed with a negative length
	ErrInvalidLength = errors.New("barrier length must be non-negative")

	// ErrInvalidIndex is returned when a slot operation is given a negative index
	ErrInvalidIndex = errors.New("slot index must be non-negative")

	// ErrIndexOutOfRange is returned when a slot operation addresses an index at or past the barrier length
	ErrIndexOutOfRange = errors.New("slot index out of range")

	// ErrNilRejection stands in for a nil error passed to Reject, so a rejected
	// future always carries a non-nil cause
	ErrNilRejection = errors.New("future rejected with nil error")
)
