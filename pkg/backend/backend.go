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

package backend

import (
	"github.com/volsched/volsched/pkg/util"
)

// State is a snapshot of one candidate backend as seen by the filter chain.
// Filters read it, never mutate it.
type State struct {
	// BackendID is the raw identity of the backend, either a full
	// "host@backend#pool" identity or a plain hostname.
	BackendID string `json:"backendId"`
}

// Host returns the backend's host name, i.e. its identity normalized to the
// host component.
func (s *State) Host() string {
	return util.ExtractHost(s.BackendID, util.LevelHost)
}

// Pool returns the backend's pool name, falling back to the default pool
// name when the identity carries no pool information.
func (s *State) Pool() string {
	return util.ExtractPool(s.BackendID, true)
}
