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

package future_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ngnhng/settle/future"
)

func TestPromiseAcrossGoroutines(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p := future.NewPromise[string]()
	go p.Resolve("from elsewhere")

	got, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "from elsewhere" {
		t.Errorf("Get = %q, want %q", got, "from elsewhere")
	}
}

func TestBarrierFanIn(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const workers = 4

	b, err := future.NewBarrier[int](workers)
	if err != nil {
		t.Fatalf("NewBarrier failed: %v", err)
	}

	for i := range workers {
		go func() {
			b.Resolve(i, i*i)
		}()
	}

	got, err := b.All().Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	for i, v := range got {
		if v != i*i {
			t.Errorf("slot %d = %d, want %d", i, v, i*i)
		}
	}
}

func TestBarrierValidationErrors(t *testing.T) {
	if _, err := future.NewBarrier[int](-1); !errors.Is(err, future.ErrInvalidLength) {
		t.Errorf("NewBarrier(-1) error = %v, want ErrInvalidLength", err)
	}

	b, err := future.NewBarrier[int](1)
	if err != nil {
		t.Fatalf("NewBarrier failed: %v", err)
	}
	if err := b.Resolve(-1, 0); !errors.Is(err, future.ErrInvalidIndex) {
		t.Errorf("Resolve(-1) error = %v, want ErrInvalidIndex", err)
	}
	if err := b.Resolve(1, 0); !errors.Is(err, future.ErrIndexOutOfRange) {
		t.Errorf("Resolve(1) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRegistryDrain(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := future.NewRegistry[int](nil)

	good := future.NewPromise[int]()
	bad := future.NewPromise[int]()
	r.Add(good)
	r.Add(bad)

	all := r.AllSettled()

	good.Resolve(1)
	bad.Reject(errors.New("worker crashed"))

	outcomes, err := all.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if outcomes[0].Status != future.StatusFulfilled {
		t.Errorf("outcome[0].Status = %q, want %q", outcomes[0].Status, future.StatusFulfilled)
	}
	if outcomes[1].Status != future.StatusRejected {
		t.Errorf("outcome[1].Status = %q, want %q", outcomes[1].Status, future.StatusRejected)
	}
}

func TestThenComposition(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := future.NewRegistry[int](nil)
	p := future.NewPromise[int]()
	r.Add(p)

	fulfilled := future.Then(r.AllSettled(), func(outcomes []future.Outcome[int]) (int, error) {
		n := 0
		for _, o := range outcomes {
			if o.Status == future.StatusFulfilled {
				n++
			}
		}
		return n, nil
	})

	p.Resolve(99)

	got, err := fulfilled.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 1 {
		t.Errorf("fulfilled count = %d, want 1", got)
	}
}

func ExampleNewPromise() {
	p := future.NewPromise[int]()

	go p.Resolve(42)

	v, err := p.Get(context.Background())
	fmt.Println(v, err)
	// Output: 42 <nil>
}

func ExampleBarrier_All() {
	b, _ := future.NewBarrier[string](3)

	b.Resolve(2, "c")
	b.Resolve(0, "a")
	b.Resolve(1, "b")

	values, _ := b.All().Get(context.Background())
	fmt.Println(values)
	// Output: [a b c]
}

func ExampleRegistry_AllSettled() {
	r := future.NewRegistry[int](nil)

	p1 := future.NewPromise[int]()
	p2 := future.NewPromise[int]()
	r.Add(p1)
	r.Add(p2)

	batch := r.AllSettled()
	p1.Resolve(7)
	p2.Reject(errors.New("no luck"))

	outcomes, _ := batch.Get(context.Background())
	for _, o := range outcomes {
		fmt.Println(o.Status)
	}
	// Output:
	// fulfilled
	// rejected
}
