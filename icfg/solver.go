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

package icfg

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// worklist is a FIFO queue of ir.Stmt with membership deduplication, exactly as the
// intraprocedural framework's (spec 9: worklist order unobservable, but must be deterministic).
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

// Solve runs the interprocedural worklist fixpoint of spec 4.8 over g, starting from
// entryNodes (typically g.EntryNodes()).
func Solve[F dataflow.Fact[F]](g ir.ICFG, entryNodes []ir.Stmt, analysis Analysis[F]) *Result[F] {
	res := newResult[F]()
	isEntry := map[ir.Stmt]bool{}
	for _, n := range entryNodes {
		isEntry[n] = true
	}

	var nonEntry []ir.Stmt
	for _, n := range g.Nodes() {
		if isEntry[n] {
			res.setOut(n, analysis.NewBoundaryFact(n))
			res.setIn(n, analysis.NewInitialFact())
		} else {
			res.setIn(n, analysis.NewInitialFact())
			res.setOut(n, analysis.NewInitialFact())
			nonEntry = append(nonEntry, n)
		}
	}

	wl := newWorklist(nonEntry)
	analysis.Init(res, wl.push)
	for !wl.empty() {
		n := wl.poll()

		in := analysis.NewInitialFact()
		for _, e := range g.InEdges(n) {
			contributed := analysis.TransferEdge(e, res.GetOutFact(e.From))
			analysis.MeetInto(contributed, in)
		}
		res.setIn(n, in)

		out := res.GetOutFact(n)
		changed := analysis.TransferNode(n, in, out)
		res.setOut(n, out)
		if changed {
			for _, e := range g.OutEdges(n) {
				if !isEntry[e.To] {
					wl.push(e.To)
				}
			}
		}
	}
	return res
}
