// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataflow

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// worklist is a FIFO queue of ir.Stmt with membership deduplication (spec 9): worklist order
// is not observable in the final result, but must be deterministic for reproducibility, and a
// node already queued must never be queued twice.
type worklist struct {
	queue    []ir.Stmt
	enqueued map[ir.Stmt]bool
}

func newWorklist(nodes []ir.Stmt) *worklist {
	w := &worklist{queue: append([]ir.Stmt{}, nodes...), enqueued: map[ir.Stmt]bool{}}
	for _, n := range nodes {
		w.enqueued[n] = true
	}
	return w
}

func (w *worklist) empty() bool { return len(w.queue) == 0 }

func (w *worklist) poll() ir.Stmt {
	n := w.queue[0]
	w.queue = w.queue[1:]
	w.enqueued[n] = false
	return n
}

func (w *worklist) push(n ir.Stmt) {
	if !w.enqueued[n] {
		w.queue = append(w.queue, n)
		w.enqueued[n] = true
	}
}

// Solve runs the intraprocedural worklist fixpoint of spec 4.1 for analysis over cfg, in
// either direction depending on analysis.IsForward().
func Solve[F Fact[F]](cfg ir.CFG, analysis Analysis[F]) *Result[F] {
	if analysis.IsForward() {
		return solveForward(cfg, analysis)
	}
	return solveBackward(cfg, analysis)
}

func solveForward[F Fact[F]](cfg ir.CFG, analysis Analysis[F]) *Result[F] {
	res := newResult[F]()
	stmts := cfg.Stmts()

	res.setOut(cfg.Entry(), analysis.NewBoundaryFact(cfg))
	res.setIn(cfg.Entry(), analysis.NewInitialFact())
	for _, n := range stmts {
		res.setIn(n, analysis.NewInitialFact())
		res.setOut(n, analysis.NewInitialFact())
	}

	wl := newWorklist(stmts)
	for !wl.empty() {
		n := wl.poll()
		in := analysis.NewInitialFact()
		for _, p := range cfg.PredsOf(n) {
			analysis.MeetInto(res.GetOutFact(p), in)
		}
		res.setIn(n, in)
		out := res.GetOutFact(n)
		changed := analysis.TransferNode(n, in, out)
		res.setOut(n, out)
		if changed {
			for _, s := range cfg.SuccsOf(n) {
				if s != cfg.Exit() {
					wl.push(s)
				}
			}
		}
	}
	return res
}

func solveBackward[F Fact[F]](cfg ir.CFG, analysis Analysis[F]) *Result[F] {
	res := newResult[F]()
	stmts := cfg.Stmts()

	res.setIn(cfg.Exit(), analysis.NewBoundaryFact(cfg))
	res.setOut(cfg.Exit(), analysis.NewInitialFact())
	for _, n := range stmts {
		res.setIn(n, analysis.NewInitialFact())
		res.setOut(n, analysis.NewInitialFact())
	}

	wl := newWorklist(stmts)
	for !wl.empty() {
		n := wl.poll()
		out := analysis.NewInitialFact()
		for _, s := range cfg.SuccsOf(n) {
			analysis.MeetInto(res.GetInFact(s), out)
		}
		res.setOut(n, out)
		in := res.GetInFact(n)
		changed := analysis.TransferNode(n, in, out)
		res.setIn(n, in)
		if changed {
			for _, p := range cfg.PredsOf(n) {
				if p != cfg.Entry() {
					wl.push(p)
				}
			}
		}
	}
	return res
}
