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
	"github.com/cpuguy83/strongerrors"

	"github.com/volsched/volsched/pkg/backend"
	"github.com/volsched/volsched/pkg/request"
	"github.com/volsched/volsched/pkg/util"
	"github.com/volsched/volsched/pkg/volume"
)

// SameVolumeHostHint is the scheduler hint read by VolumeAffinityFilter.
const SameVolumeHostHint = "same_volume_host"

// VolumeAffinityFilter passes only the candidates located on the same host
// as the volume named by the same_volume_host scheduler hint. Co-locating a
// resource with its volume matters for backends like LVM where data locality
// determines I/O performance.
//
// Affinity that cannot be proven is treated as absent: when the volume does
// not exist, the lookup fails, or the volume reports no location, every
// candidate fails.
type VolumeAffinityFilter struct {
	volumes volume.Getter
}

// NewVolumeAffinityFilter creates a new VolumeAffinityFilter that resolves
// volumes with the given Getter.
func NewVolumeAffinityFilter(volumes volume.Getter) *VolumeAffinityFilter {
	return &VolumeAffinityFilter{volumes: volumes}
}

// Name implements Filter interface.
func (f *VolumeAffinityFilter) Name() string {
	return "VolumeAffinityFilter"
}

// RunOnRebuild implements Filter interface.
// A rebuild keeps the resource on its current host, so volume affinity does
// not apply.
func (f *VolumeAffinityFilter) RunOnRebuild() bool {
	return false
}

// Passes implements Filter interface.
// The volume is resolved fresh on every call, under the caller's elevated
// context; it may belong to a different project than the caller's. Lookup
// errors never propagate to the caller.
func (f *VolumeAffinityFilter) Passes(ctx context.Context, state *backend.State, req *request.Spec) bool {
	volumeID := req.Hint(SameVolumeHostHint)
	if volumeID == "" {
		log.G(ctx).Debugf("No %s hint provided, skipping filter", SameVolumeHostHint)
		return true
	}

	vol, err := f.volumes.Get(ctx, req.Context.Elevated(), volumeID)
	if err != nil {
		if strongerrors.IsNotFound(err) {
			log.G(ctx).Warnf("Volume %s not found", volumeID)
		} else {
			log.G(ctx).WithError(err).Errorf("Error checking volume location for volume %s", volumeID)
		}
		return false
	}

	if vol.Host == "" {
		log.G(ctx).Warnf("Could not determine host for volume %s", volumeID)
		return false
	}

	volumeHost := util.ExtractHost(vol.Host, util.LevelHost)
	backendHost := state.Host()

	if backendHost == volumeHost {
		log.G(ctx).Debugf("Host %s matches volume location for volume %s", backendHost, volumeID)
		return true
	}

	log.G(ctx).Debugf("Host %s does not match volume location %s for volume %s", backendHost, volumeHost, volumeID)
	return false
}

var _ = Filter(&VolumeAffinityFilter{})
