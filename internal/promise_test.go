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
	"errors"
	"sync"
	"testing"
	"time"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPromiseResolve(t *testing.T) {
	p := NewPromise[string]()

	if p.Ready() {
		t.Fatal("new promise reports Ready")
	}

	if ok := p.Resolve("done"); !ok {
		t.Fatal("first Resolve returned false")
	}

	if !p.Ready() {
		t.Fatal("resolved promise not Ready")
	}

	got, err := p.Get(testContext(t))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "done" {
		t.Errorf("Get = %q, want %q", got, "done")
	}
}

func TestPromiseReject(t *testing.T) {
	wantErr := errors.New("boom")
	p := NewPromise[int]()

	if ok := p.Reject(wantErr); !ok {
		t.Fatal("first Reject returned false")
	}

	_, err := p.Get(testContext(t))
	if !errors.Is(err, wantErr) {
		t.Errorf("Get error = %v, want %v", err, wantErr)
	}
}

func TestPromiseRejectNilError(t *testing.T) {
	p := NewPromise[int]()
	p.Reject(nil)

	_, err := p.Get(testContext(t))
	if !errors.Is(err, ErrNilRejection) {
		t.Errorf("Get error = %v, want ErrNilRejection", err)
	}
}

func TestPromiseDoubleSettle(t *testing.T) {
	tests := []struct {
		name   string
		first  func(p *Promise[int]) bool
		second func(p *Promise[int]) bool
		check  func(t *testing.T, p *Promise[int])
	}{
		{
			name:   "resolve then resolve",
			first:  func(p *Promise[int]) bool { return p.Resolve(1) },
			second: func(p *Promise[int]) bool { return p.Resolve(2) },
			check: func(t *testing.T, p *Promise[int]) {
				got, err := p.Get(testContext(t))
				if err != nil || got != 1 {
					t.Errorf("Get = (%v, %v), want (1, nil)", got, err)
				}
			},
		},
		{
			name:   "resolve then reject",
			first:  func(p *Promise[int]) bool { return p.Resolve(1) },
			second: func(p *Promise[int]) bool { return p.Reject(errors.New("late")) },
			check: func(t *testing.T, p *Promise[int]) {
				got, err := p.Get(testContext(t))
				if err != nil || got != 1 {
					t.Errorf("Get = (%v, %v), want (1, nil)", got, err)
				}
			},
		},
		{
			name:   "reject then resolve",
			first:  func(p *Promise[int]) bool { return p.Reject(errors.New("first")) },
			second: func(p *Promise[int]) bool { return p.Resolve(2) },
			check: func(t *testing.T, p *Promise[int]) {
				_, err := p.Get(testContext(t))
				if err == nil || err.Error() != "first" {
					t.Errorf("Get error = %v, want %q", err, "first")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPromise[int]()
			if !tt.first(p) {
				t.Fatal("first settle returned false")
			}
			if tt.second(p) {
				t.Fatal("second settle returned true")
			}
			tt.check(t, p)
		})
	}
}

func TestPromiseGetBlocksUntilSettled(t *testing.T) {
	p := NewPromise[int]()
	started := make(chan struct{})

	go func() {
		<-started
		p.Resolve(42)
	}()

	close(started)
	got, err := p.Get(testContext(t))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Get = %d, want 42", got)
	}
}

func TestPromiseGetContextCanceled(t *testing.T) {
	p := NewPromise[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Get(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v, want context.Canceled", err)
	}
}

func TestPromiseGetIgnoresContextOnceSettled(t *testing.T) {
	p := NewPromise[int]()
	p.Resolve(7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := p.Get(ctx)
	if err != nil {
		t.Fatalf("Get on settled promise failed: %v", err)
	}
	if got != 7 {
		t.Errorf("Get = %d, want 7", got)
	}
}

func TestPromiseDoneClosesOnSettle(t *testing.T) {
	p := NewPromise[int]()

	select {
	case <-p.Done():
		t.Fatal("Done closed before settle")
	default:
	}

	p.Resolve(1)

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after settle")
	}
}

func TestOnSettledBeforeSettle(t *testing.T) {
	p := NewPromise[string]()
	got := make(chan string, 1)

	p.OnSettled(func(value string, err error) {
		if err != nil {
			t.Errorf("callback error = %v, want nil", err)
		}
		got <- value
	})

	p.Resolve("later")

	select {
	case v := <-got:
		if v != "later" {
			t.Errorf("callback value = %q, want %q", v, "later")
		}
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

func TestOnSettledAfterSettle(t *testing.T) {
	p := NewPromise[string]()
	p.Resolve("already")

	got := make(chan string, 1)
	p.OnSettled(func(value string, err error) {
		got <- value
	})

	select {
	case v := <-got:
		if v != "already" {
			t.Errorf("callback value = %q, want %q", v, "already")
		}
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

// Settling must not run callbacks inside the Resolve call itself. The
// callback sends on an unbuffered channel that only the test goroutine
// receives from after Resolve returns, so an inline callback would
// deadlock here and trip the test timeout.
func TestSettleDoesNotRunCallbacksInline(t *testing.T) {
	p := NewPromise[int]()
	ran := make(chan struct{})

	p.OnSettled(func(int, error) {
		ran <- struct{}{}
	})

	p.Resolve(1)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

// Same property for the attach side: registering on an already settled
// promise must hand the callback to another goroutine, not run it inline.
func TestOnSettledDoesNotRunInline(t *testing.T) {
	p := NewPromise[int]()
	p.Resolve(1)

	ran := make(chan struct{})
	p.OnSettled(func(int, error) {
		ran <- struct{}{}
	})

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
}

func TestOnSettledRunsInAttachmentOrder(t *testing.T) {
	const callbacks = 10

	p := NewPromise[int]()

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := range callbacks {
		p.OnSettled(func(int, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	p.OnSettled(func(int, error) {
		close(done)
	})

	p.Resolve(0)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callbacks never drained")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != callbacks {
		t.Fatalf("ran %d callbacks, want %d", len(order), callbacks)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
}

func TestOnSettledNilCallbackPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("OnSettled(nil) did not panic")
		}
	}()

	NewPromise[int]().OnSettled(nil)
}

func TestPromiseConcurrentSettle(t *testing.T) {
	const settlers = 32

	p := NewPromise[int]()

	var wg sync.WaitGroup
	wins := make(chan int, settlers)
	for i := range settlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.Resolve(i) {
				wins <- i
			}
		}()
	}
	wg.Wait()
	close(wins)

	var winners []int
	for w := range wins {
		winners = append(winners, w)
	}
	if len(winners) != 1 {
		t.Fatalf("got %d winning settles, want exactly 1", len(winners))
	}

	got, err := p.Get(testContext(t))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != winners[0] {
		t.Errorf("Get = %d, want winner %d", got, winners[0])
	}
}

func TestResolved(t *testing.T) {
	f := Resolved("ready")

	if !f.Ready() {
		t.Fatal("Resolved future not Ready")
	}
	got, err := f.Get(testContext(t))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "ready" {
		t.Errorf("Get = %q, want %q", got, "ready")
	}
}

func TestRejected(t *testing.T) {
	wantErr := errors.New("dead on arrival")
	f := Rejected[string](wantErr)

	if !f.Ready() {
		t.Fatal("Rejected future not Ready")
	}
	_, err := f.Get(testContext(t))
	if !errors.Is(err, wantErr) {
		t.Errorf("Get error = %v, want %v", err, wantErr)
	}
}

func TestThenMapsValue(t *testing.T) {
	p := NewPromise[int]()
	doubled := Then(p, func(v int) (int, error) {
		return v * 2, nil
	})

	p.Resolve(21)

	got, err := doubled.Get(testContext(t))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Get = %d, want 42", got)
	}
}

func TestThenPropagatesRejection(t *testing.T) {
	wantErr := errors.New("upstream failed")
	p := NewPromise[int]()

	called := false
	mapped := Then(p, func(v int) (string, error) {
		called = true
		return "", nil
	})

	p.Reject(wantErr)

	_, err := mapped.Get(testContext(t))
	if !errors.Is(err, wantErr) {
		t.Errorf("Get error = %v, want %v", err, wantErr)
	}
	if called {
		t.Error("map callback ran on a rejected future")
	}
}

func TestThenCallbackError(t *testing.T) {
	wantErr := errors.New("mapping failed")
	p := NewPromise[int]()
	mapped := Then(p, func(v int) (string, error) {
		return "", wantErr
	})

	p.Resolve(1)

	_, err := mapped.Get(testContext(t))
	if !errors.Is(err, wantErr) {
		t.Errorf("Get error = %v, want %v", err, wantErr)
	}
}
