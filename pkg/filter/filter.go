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

// Package filter provides placement filters that decide, per candidate
// backend, whether the candidate may serve a placement request.
package filter

import (
	"context"

	"github.com/volsched/volsched/pkg/backend"
	"github.com/volsched/volsched/pkg/request"
)

// Filter decides whether a candidate backend may serve a placement request.
//
// Filters are stateless; evaluations of different candidates are independent
// of each other and may run concurrently.
type Filter interface {
	// Name identifies this filter in configs, logs, and failure maps.
	Name() string

	// Passes reports whether the candidate is eligible for the request.
	// Expected failure modes (missing hint, failed or incomplete lookup)
	// are absorbed and logged; they never propagate to the caller, so one
	// candidate's failure cannot abort the filtering pass.
	Passes(ctx context.Context, state *backend.State, req *request.Spec) bool

	// RunOnRebuild reports whether this filter applies to rebuild
	// requests.
	RunOnRebuild() bool
}
