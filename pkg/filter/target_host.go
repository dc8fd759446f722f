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

package filter

import (
	"context"

	"github.com/containerd/containerd/log"

	"github.com/volsched/volsched/pkg/backend"
	"github.com/volsched/volsched/pkg/request"
)

// TargetHostHint is the scheduler hint read by TargetHostFilter.
const TargetHostHint = "target_host"

// TargetHostFilter passes only the backend whose host name matches the
// target_host scheduler hint. Requests without the hint pass every backend
// and fall through to the remaining filters.
type TargetHostFilter struct{}

// NewTargetHostFilter creates a new TargetHostFilter.
func NewTargetHostFilter() *TargetHostFilter {
	return &TargetHostFilter{}
}

// Name implements Filter interface.
func (f *TargetHostFilter) Name() string {
	return "TargetHostFilter"
}

// RunOnRebuild implements Filter interface.
func (f *TargetHostFilter) RunOnRebuild() bool {
	return true
}

// Passes implements Filter interface.
// The comparison is exact and case-sensitive; no prefix or wildcard
// matching.
func (f *TargetHostFilter) Passes(ctx context.Context, state *backend.State, req *request.Spec) bool {
	targetHost := req.Hint(TargetHostHint)
	if targetHost == "" {
		return true
	}

	backendHost := state.Host()
	if backendHost != targetHost {
		log.G(ctx).Debugf("Backend %s filtered out: does not match target host %s", backendHost, targetHost)
		return false
	}

	return true
}

var _ = Filter(&TargetHostFilter{})
