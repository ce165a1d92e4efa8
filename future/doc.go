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

// Package future provides one-shot settleable futures and the coordination
// primitives built on them: externally settleable promises, fixed-size
// barriers with ordered aggregate results, and a self-evicting registry of
// in-flight work.
//
// Every primitive here is safe for concurrent use. A future settles at most
// once, either fulfilled with a value or rejected with an error, and keeps
// that outcome forever; waiting is bounded only by the caller's context.
//
// # Promises
//
// A Promise hands the outcome decision to whoever holds it. Create one,
// share it, and settle it from wherever the result materializes:
//
//	p := future.NewPromise[int]()
//
//	go func() {
//		n, err := computeSomething(ctx)
//		if err != nil {
//			p.Reject(err)
//			return
//		}
//		p.Resolve(n)
//	}()
//
//	n, err := p.Get(ctx)
//
// The first Resolve or Reject wins; later calls are no-ops that report
// defeat by returning false.
//
// # Barriers
//
// A Barrier is a fixed number of slots, each an independent future, settled
// by position. All waits for every slot and preserves slot order; Race
// adopts whichever slot settles first:
//
//	b, err := future.NewBarrier[Result](len(shards))
//	if err != nil {
//		return err
//	}
//	for i, shard := range shards {
//		go func() {
//			res, err := shard.Query(ctx)
//			if err != nil {
//				b.Reject(i, err)
//				return
//			}
//			b.Resolve(i, res)
//		}()
//	}
//
//	results, err := b.All().Get(ctx)
//
// # Registries
//
// A Registry tracks futures that are still in flight. Entries remove
// themselves on settlement, and AllSettled drains a snapshot into per-entry
// outcomes without failing on rejections:
//
//	r := future.NewRegistry[Reply](nil)
//	for _, req := range requests {
//		r.Add(send(ctx, req))
//	}
//
//	outcomes, err := r.AllSettled().Get(ctx)
//
// # Callbacks
//
// OnSettled registers a continuation. Continuations on one future run in
// registration order on a dedicated goroutine, never inside the call that
// registered or settled them, so settling while holding a lock is safe.
package future
