// Copyright 2024 The volsched Authors
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

package scheduler

import (
	"context"

	"github.com/containerd/containerd/log"

	"github.com/volsched/volsched/pkg/backend"
	"github.com/volsched/volsched/pkg/filter"
	l "github.com/volsched/volsched/pkg/log"
	"github.com/volsched/volsched/pkg/request"
)

// FailedFilters maps a rejected candidate's backend ID to the names of the
// filters that rejected it.
type FailedFilters map[string][]string

// Pipeline runs an ordered filter chain over the candidate backends of a
// placement request. It only decides pass/fail per candidate; ranking the
// passing candidates belongs to the caller.
type Pipeline struct {
	filters []filter.Filter
}

// NewPipeline creates a new Pipeline with an empty filter chain. A Pipeline
// with no filters passes every candidate.
func NewPipeline() *Pipeline {
	return &Pipeline{filters: []filter.Filter{}}
}

// AddFilter appends a filter to this Pipeline's chain.
func (p *Pipeline) AddFilter(f filter.Filter) {
	p.filters = append(p.filters, f)
}

// Filter evaluates every candidate against the filter chain and returns the
// candidates that passed all filters, plus the per-candidate failure map for
// the rest. Candidates are independent; a candidate failing, for whatever
// reason, never aborts the evaluation of the others.
//
// Filters that do not apply to rebuild requests are skipped when the request
// is a rebuild.
func (p *Pipeline) Filter(ctx context.Context, req *request.Spec, states []*backend.State) ([]*backend.State, FailedFilters) {
	log.G(ctx).Debugf("Filtering %d candidates for request %s", len(states), req.ID)

	passed := make([]*backend.State, 0, len(states))
	failed := FailedFilters{}

	for _, state := range states {
		var failedNames []string

		for _, f := range p.filters {
			if req.Rebuild && !f.RunOnRebuild() {
				continue
			}
			if !f.Passes(ctx, state, req) {
				failedNames = append(failedNames, f.Name())
			}
		}

		if len(failedNames) == 0 {
			passed = append(passed, state)
		} else {
			failed[state.BackendID] = failedNames
		}
	}

	if l.IsDebugEnabled() {
		hosts := make([]string, 0, len(passed))
		for _, state := range passed {
			hosts = append(hosts, state.Host())
		}
		log.G(ctx).Debugf("Request %s: %d of %d candidates passed: %v", req.ID, len(passed), len(states), hosts)
	}

	return passed, failed
}
