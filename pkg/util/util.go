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

package util

import (
	"strings"
)

// Level selects which component of a backend identity ExtractHost derives.
type Level string

const (
	// LevelHost selects the host component, i.e. the segment before '@'.
	LevelHost Level = "host"
	// LevelBackend selects the backend component, i.e. the segment before '#'.
	LevelBackend Level = "backend"
	// LevelPool selects the pool component, i.e. the segment after '#'.
	LevelPool Level = "pool"
)

// DefaultPoolName is the pool name assumed for backends that do not report
// pool information.
const DefaultPoolName = "_pool0"

// ExtractHost derives the component of a backend identity selected by level.
// A full backend identity has the form "host@backend#pool". An identity
// without delimiters is its own host and backend component, and has no pool
// component.
func ExtractHost(backendID string, level Level) string {
	switch level {
	case LevelHost:
		return strings.SplitN(backendID, "@", 2)[0]
	case LevelBackend:
		return strings.SplitN(backendID, "#", 2)[0]
	case LevelPool:
		parts := strings.SplitN(backendID, "#", 2)
		if len(parts) == 2 {
			return parts[1]
		}
		return ""
	}

	return backendID
}

// ExtractPool derives the pool component of a backend identity.
// If the identity carries no pool information and defaultPool is true,
// DefaultPoolName is returned instead of the empty string.
func ExtractPool(backendID string, defaultPool bool) string {
	if pool := ExtractHost(backendID, LevelPool); pool != "" {
		return pool
	}
	if defaultPool {
		return DefaultPoolName
	}

	return ""
}
