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

var (
	// ErrInvalidLength is returned by NewBarrier for a negative length
	ErrInvalidLength = internal.ErrInvalidLength

	// ErrInvalidIndex is returned by slot operations for a negative index
	ErrInvalidIndex = internal.ErrInvalidIndex

	// ErrIndexOutOfRange is returned by slot operations for an index at or past the barrier length
	ErrIndexOutOfRange = internal.ErrIndexOutOfRange

	// ErrNilRejection replaces a nil error passed to Reject
	ErrNilRejection = internal.ErrNilRejection
)
