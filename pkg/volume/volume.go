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

package volume

import (
	"context"

	"github.com/volsched/volsched/pkg/request"
)

// Volume is the view of a block volume reported by the volume service.
type Volume struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`

	// Host is the identity of the backend that owns the volume, in the
	// "host@backend#pool" form. The volume service reports it as an
	// optional vendor attribute; Host is empty when the attribute was
	// absent from the response.
	Host string `json:"os-vol-host-attr:host,omitempty"`
}

// Getter resolves volumes by ID against the volume service.
//
// Implementations return a strongerrors.NotFound error when the volume does
// not exist, and a plain error for any other failure. The result is fetched
// fresh on every call; a volume's location can change between scheduling
// attempts, so Getter results must not be cached.
type Getter interface {
	Get(ctx context.Context, rctx request.Context, id string) (*Volume, error)
}
