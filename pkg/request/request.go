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

package request

// Context identifies the caller on whose behalf a placement request is
// evaluated. It is passed to collaborators that need to authorize calls made
// during filtering.
type Context struct {
	UserID    string `json:"userId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Admin     bool   `json:"admin,omitempty"`
}

// Elevated returns a copy of the context with admin privilege. Lookups made
// during filtering may touch resources owned by a different project than the
// caller's, so they run under an elevated context.
func (c Context) Elevated() Context {
	c.Admin = true
	return c
}

// Spec represents one placement request entering the filtering pass.
// A Spec is read-only during filtering; its hints do not change once the
// request enters the filter chain.
type Spec struct {
	// ID identifies the request in logs and API responses.
	ID string `json:"id"`

	// Rebuild marks the request as a rebuild of an existing resource.
	// Filters that do not apply to rebuilds are skipped for such requests.
	Rebuild bool `json:"rebuild,omitempty"`

	// SchedulerHints carries optional out-of-band placement hints.
	// Keys not recognized by any enabled filter are ignored.
	SchedulerHints map[string]string `json:"schedulerHints,omitempty"`

	// Context is the caller's identity.
	Context Context `json:"context,omitempty"`
}

// Hint returns the scheduler hint stored under key, or the empty string when
// the hint is unset. An empty hint value means "no constraint".
func (s *Spec) Hint(key string) string {
	if s.SchedulerHints == nil {
		return ""
	}
	return s.SchedulerHints[key]
}
