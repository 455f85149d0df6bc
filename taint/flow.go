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

package taint

import (
	"sort"

	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// TaintFlow is spec 4.7's report: a source callsite, a sink callsite, and the tainted argument
// index. SinkMethod is a SPEC_FULL addition (A8/TaintAnalysiss.java resolves sinks against the
// enclosing method too) naming the method the sink call site is found in.
type TaintFlow struct {
	Source     *ir.Invoke
	Sink       *ir.Invoke
	ArgIndex   int
	SinkMethod *ir.Method
}

// CollectFlows scans every recorded sink call site's points-to set (after Solve has run to
// completion) and reports one TaintFlow per tainted object found there (spec 4.7).
func (o *Overlay) CollectFlows() []TaintFlow {
	var flows []TaintFlow
	for _, rec := range o.sinks {
		for _, obj := range rec.ptr.PointsTo().Objects() {
			if !o.mgr.isTaint(obj) {
				continue
			}
			flows = append(flows, TaintFlow{
				Source:     o.mgr.sourceCallOf(obj),
				Sink:       rec.site,
				ArgIndex:   rec.argIndex,
				SinkMethod: rec.enclosing,
			})
		}
	}
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].Source.Idx() != flows[j].Source.Idx() {
			return flows[i].Source.Idx() < flows[j].Source.Idx()
		}
		if flows[i].Sink.Idx() != flows[j].Sink.Idx() {
			return flows[i].Sink.Idx() < flows[j].Sink.Idx()
		}
		return flows[i].ArgIndex < flows[j].ArgIndex
	})
	return flows
}
