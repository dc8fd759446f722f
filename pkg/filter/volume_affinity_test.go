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

package filter_test

import (
	"context"
	"testing"

	"github.com/cpuguy83/strongerrors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/volsched/volsched/pkg/backend"
	"github.com/volsched/volsched/pkg/filter"
	"github.com/volsched/volsched/pkg/request"
	"github.com/volsched/volsched/pkg/volume"
)

// fakeGetter serves volumes from a fixed map and records each call.
type fakeGetter struct {
	volumes map[string]*volume.Volume
	err     error

	calls    int
	lastRctx request.Context
	lastID   string
}

func (g *fakeGetter) Get(ctx context.Context, rctx request.Context, id string) (*volume.Volume, error) {
	g.calls++
	g.lastRctx = rctx
	g.lastID = id

	if g.err != nil {
		return nil, g.err
	}
	if vol, ok := g.volumes[id]; ok {
		return vol, nil
	}
	return nil, strongerrors.NotFound(errors.Errorf("volume %s not found", id))
}

func affinitySpec(volumeID string) *request.Spec {
	return &request.Spec{
		ID: "req-0",
		SchedulerHints: map[string]string{
			filter.SameVolumeHostHint: volumeID,
		},
		Context: request.Context{UserID: "user-0", ProjectID: "project-0"},
	}
}

func TestVolumeAffinityFilterNoHint(t *testing.T) {
	getter := &fakeGetter{}
	f := filter.NewVolumeAffinityFilter(getter)
	state := &backend.State{BackendID: "node1@lvm-1#pool0"}

	if !f.Passes(context.Background(), state, &request.Spec{ID: "req-0"}) {
		t.Errorf("got: false\nwant: true")
	}

	spec := affinitySpec("")
	if !f.Passes(context.Background(), state, spec) {
		t.Errorf("got: false\nwant: true")
	}

	// No lookup happens for unconstrained requests.
	if getter.calls != 0 {
		t.Errorf("got: %d calls\nwant: 0", getter.calls)
	}
}

func TestVolumeAffinityFilterMatch(t *testing.T) {
	getter := &fakeGetter{
		volumes: map[string]*volume.Volume{
			"vol-123": {ID: "vol-123", Host: "hostX@lvm-1"},
		},
	}
	f := filter.NewVolumeAffinityFilter(getter)
	spec := affinitySpec("vol-123")

	state := &backend.State{BackendID: "hostX"}
	assert.True(t, f.Passes(context.Background(), state, spec))

	state = &backend.State{BackendID: "hostY"}
	assert.False(t, f.Passes(context.Background(), state, spec))

	// The owning identity is normalized to its host component before the
	// comparison, for candidates with full backend identities too.
	getter.volumes["vol-124"] = &volume.Volume{ID: "vol-124", Host: "nodeA@backend1#poolX"}
	spec = affinitySpec("vol-124")

	state = &backend.State{BackendID: "nodeA@backend1#poolX"}
	assert.True(t, f.Passes(context.Background(), state, spec))

	state = &backend.State{BackendID: "nodeB@backend1#poolX"}
	assert.False(t, f.Passes(context.Background(), state, spec))
}

func TestVolumeAffinityFilterNotFound(t *testing.T) {
	getter := &fakeGetter{}
	f := filter.NewVolumeAffinityFilter(getter)
	spec := affinitySpec("vol-123")

	for _, backendID := range []string{"hostX", "hostY", "nodeA@backend1#poolX"} {
		state := &backend.State{BackendID: backendID}
		if f.Passes(context.Background(), state, spec) {
			t.Errorf("Passes(%q) got: true\nwant: false", backendID)
		}
	}
}

func TestVolumeAffinityFilterMissingHost(t *testing.T) {
	getter := &fakeGetter{
		volumes: map[string]*volume.Volume{
			"vol-123": {ID: "vol-123"},
		},
	}
	f := filter.NewVolumeAffinityFilter(getter)
	spec := affinitySpec("vol-123")

	state := &backend.State{BackendID: "hostX"}
	if f.Passes(context.Background(), state, spec) {
		t.Errorf("got: true\nwant: false")
	}
}

func TestVolumeAffinityFilterLookupError(t *testing.T) {
	getter := &fakeGetter{
		err: errors.New("volume service unreachable"),
	}
	f := filter.NewVolumeAffinityFilter(getter)
	spec := affinitySpec("vol-123")
	state := &backend.State{BackendID: "hostX"}

	// The lookup error is absorbed, not propagated.
	passed := f.Passes(context.Background(), state, spec)
	if passed {
		t.Errorf("got: true\nwant: false")
	}
}

func TestVolumeAffinityFilterElevatesContext(t *testing.T) {
	getter := &fakeGetter{
		volumes: map[string]*volume.Volume{
			"vol-123": {ID: "vol-123", Host: "hostX@lvm-1"},
		},
	}
	f := filter.NewVolumeAffinityFilter(getter)
	spec := affinitySpec("vol-123")
	state := &backend.State{BackendID: "hostX"}

	f.Passes(context.Background(), state, spec)

	assert.Equal(t, 1, getter.calls)
	assert.Equal(t, "vol-123", getter.lastID)
	assert.True(t, getter.lastRctx.Admin)
	assert.Equal(t, "project-0", getter.lastRctx.ProjectID)

	// The request's own context keeps its privilege level.
	assert.False(t, spec.Context.Admin)
}

func TestVolumeAffinityFilterIdempotent(t *testing.T) {
	getter := &fakeGetter{
		volumes: map[string]*volume.Volume{
			"vol-123": {ID: "vol-123", Host: "hostX@lvm-1"},
		},
	}
	f := filter.NewVolumeAffinityFilter(getter)
	spec := affinitySpec("vol-123")
	state := &backend.State{BackendID: "hostX"}

	first := f.Passes(context.Background(), state, spec)
	second := f.Passes(context.Background(), state, spec)
	if first != second {
		t.Errorf("got: %v then %v\nwant identical results", first, second)
	}

	// No caching: each evaluation resolves the volume again.
	if getter.calls != 2 {
		t.Errorf("got: %d calls\nwant: 2", getter.calls)
	}
}

func TestVolumeAffinityFilterRunOnRebuild(t *testing.T) {
	f := filter.NewVolumeAffinityFilter(&fakeGetter{})
	if f.RunOnRebuild() {
		t.Errorf("got: true\nwant: false")
	}
}
