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

package config

import (
	"time"

	"github.com/cpuguy83/strongerrors"
	"github.com/pkg/errors"

	"github.com/volsched/volsched/pkg/filter"
	"github.com/volsched/volsched/pkg/volume"
)

// Config represents a user-specified volsched config.
type Config struct {
	LogLevel string
	Port     int
	Filters  []string
	Volume   VolumeConfig
}

// VolumeConfig configures the connection to the volume service.
type VolumeConfig struct {
	Endpoint string
	Timeout  int // seconds, per lookup
}

// BuildVolumeGetter builds a volume.Client with the given VolumeConfig.
// Returns nil if no endpoint is configured.
func BuildVolumeGetter(config VolumeConfig) volume.Getter {
	if config.Endpoint == "" {
		return nil
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 10 * time.Second
	}

	return volume.NewClient(config.Endpoint, timeout)
}

// BuildFilters builds the filter chain for the given filter names, in order.
// Returns error if a name is not supported, or a filter requires a volume
// getter and none is configured.
func BuildFilters(names []string, volumes volume.Getter) ([]filter.Filter, error) {
	filters := make([]filter.Filter, 0, len(names))

	for _, name := range names {
		f, err := buildFilter(name, volumes)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	return filters, nil
}

func buildFilter(name string, volumes volume.Getter) (filter.Filter, error) {
	switch name {
	case "TargetHostFilter":
		return filter.NewTargetHostFilter(), nil
	case "VolumeAffinityFilter":
		if volumes == nil {
			return nil, strongerrors.InvalidArgument(errors.New("VolumeAffinityFilter enabled but volume.Endpoint not given"))
		}
		return filter.NewVolumeAffinityFilter(volumes), nil
	default:
		return nil, strongerrors.InvalidArgument(errors.Errorf("filter %q is not supported", name))
	}
}
