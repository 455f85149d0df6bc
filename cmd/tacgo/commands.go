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

package main

import (
	"fmt"

	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph"
	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph/cha"
	"git.amazon.com/pkg/PTA-GoAnalyzer/config"
	"git.amazon.com/pkg/PTA-GoAnalyzer/constprop"
	"git.amazon.com/pkg/PTA-GoAnalyzer/constprop/inter"
	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/icfg"
	"git.amazon.com/pkg/PTA-GoAnalyzer/internal/funcutil"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
	"git.amazon.com/pkg/PTA-GoAnalyzer/liveness"
	"git.amazon.com/pkg/PTA-GoAnalyzer/pta"
	"git.amazon.com/pkg/PTA-GoAnalyzer/taint"
)

// chaReport is the result dump of the "cha" command.
type chaReport struct {
	ReachableMethods []string `json:"reachable_methods"`
	Edges            []string `json:"edges"`
}

func runCHA(cfg *config.Config) (any, error) {
	log := config.NewLogGroup(cfg)
	prog, entry := chaDemo()

	g := cha.Build(entry, prog.World, prog)
	log.Debugf("CHA discovered %d reachable methods", len(g.ReachableMethods()))

	report := chaReport{}
	for _, m := range g.ReachableMethods() {
		report.ReachableMethods = append(report.ReachableMethods, m.Signature)
	}
	for _, e := range g.AllEdges() {
		report.Edges = append(report.Edges, fmt.Sprintf("%s -> %s", e.Caller.Signature, e.Callee.Signature))
	}
	report.ReachableMethods = funcutil.Sorted(report.ReachableMethods)
	report.Edges = funcutil.Sorted(report.Edges)
	return report, nil
}

// pointerReport is the result dump of the "pta" command.
type pointerReport struct {
	ReachableMethods []string       `json:"reachable_methods"`
	PointsTo         map[string]int `json:"points_to_set_sizes"`
}

func runPointerAnalysis(cfg *config.Config) (any, error) {
	prog, entry := pointerDemo()

	heapModel := heap.NewAllocationSiteModel()
	solver := pta.NewSolver(heapModel, prog.World, prog)
	result := solver.Solve(entry)

	report := pointerReport{PointsTo: map[string]int{}}
	for _, m := range result.ReachableMethods() {
		report.ReachableMethods = append(report.ReachableMethods, m.Signature)
	}
	for _, v := range result.Vars() {
		report.PointsTo[v.Name] = result.PointsToSetOf(v).Len()
	}
	report.ReachableMethods = funcutil.Sorted(report.ReachableMethods)
	return report, nil
}

// livenessReport is the result dump of the "liveness" command.
type livenessReport struct {
	DeadStatements []string `json:"dead_statements"`
}

func runLiveness(cfg *config.Config) (any, error) {
	_, built := livenessDemo()

	cp := dataflow.Solve[*lattice.CPFact](built, constprop.Analysis{})
	live := dataflow.Solve[*liveness.Facts](built, liveness.Analysis{})
	dead := liveness.DetectDeadCode(built, cp, live)

	report := livenessReport{}
	for _, d := range dead {
		report.DeadStatements = append(report.DeadStatements, fmt.Sprintf("#%d", d.Idx()))
	}
	return report, nil
}

// constPropReport is the result dump of the "constprop" command.
type constPropReport struct {
	Values map[string]string `json:"final_values"`
}

func runIntraConstProp(cfg *config.Config) (any, error) {
	_, built := livenessDemo()

	result := dataflow.Solve[*lattice.CPFact](built, constprop.Analysis{})

	out := result.GetOutFact(built.Exit())
	report := constPropReport{Values: map[string]string{}}
	if out != nil {
		for _, k := range out.Keys() {
			report.Values[k.Name] = out.Get(k).String()
		}
	}
	return report, nil
}

// interReport is the result dump of the "inter" command.
type interReport struct {
	PAliases    []string `json:"p_aliases"`
	LoadedValue string   `json:"loaded_value_after_aliased_store"`
}

func runInterConstProp(cfg *config.Config) (any, error) {
	prog, entry, p, out, load := interDemo()

	heapModel := heap.NewAllocationSiteModel()
	ptaSolver := pta.NewSolver(heapModel, prog.World, prog)
	ptaResult := ptaSolver.Solve(entry)
	aliasMap := inter.BuildAliasMap(ptaResult)

	cg := callgraph.New()
	cg.AddEntryMethod(entry)
	g := icfg.Build(cg, "tacgo")

	analysis := inter.New(g, aliasMap)
	res := icfg.Solve[*lattice.CPFact](g, g.EntryNodes(), analysis)

	report := interReport{}
	for _, a := range aliasMap.Aliases(p) {
		report.PAliases = append(report.PAliases, a.Name)
	}
	report.PAliases = funcutil.Sorted(report.PAliases)
	if loaded := res.GetOutFact(load); loaded != nil {
		report.LoadedValue = loaded.Get(out).String()
	}
	return report, nil
}

// taintReport is the result dump of the "taint" command.
type taintReport struct {
	Flows []string `json:"flows"`
}

func runTaint(cfg *config.Config) (any, error) {
	prog, entry, taintCfg := taintDemo()

	heapModel := heap.NewAllocationSiteModel()
	solver := pta.NewSolver(heapModel, prog.World, prog)
	overlay := taint.NewOverlay(taintCfg)
	solver.SetOverlay(overlay)
	solver.Solve(entry)

	report := taintReport{}
	for _, f := range overlay.CollectFlows() {
		report.Flows = append(report.Flows, fmt.Sprintf("%s -> %s (arg %d)", f.Source.Call.Method, f.Sink.Call.Method, f.ArgIndex))
	}
	return report, nil
}
