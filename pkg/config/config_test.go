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
	"testing"

	"github.com/cpuguy83/strongerrors"

	"github.com/volsched/volsched/pkg/volume"
)

func TestBuildVolumeGetter(t *testing.T) {
	actual := BuildVolumeGetter(VolumeConfig{})
	if actual != nil {
		t.Errorf("got: %+v\nwant: nil", actual)
	}

	actual = BuildVolumeGetter(VolumeConfig{Endpoint: "http://volume-api:8776", Timeout: 5})
	if actual == nil {
		t.Errorf("got: nil\nwant: a volume.Client")
	}
}

func TestBuildFilters(t *testing.T) {
	volumes := volume.NewClient("http://volume-api:8776", 0)

	filters, err := BuildFilters([]string{"TargetHostFilter", "VolumeAffinityFilter"}, volumes)
	if err != nil {
		t.Fatalf("got: %+v\nwant: no error", err)
	}

	if len(filters) != 2 {
		t.Fatalf("got: %d filters\nwant: 2", len(filters))
	}

	expected := "TargetHostFilter"
	if filters[0].Name() != expected {
		t.Errorf("got: %q\nwant: %q", filters[0].Name(), expected)
	}

	expected = "VolumeAffinityFilter"
	if filters[1].Name() != expected {
		t.Errorf("got: %q\nwant: %q", filters[1].Name(), expected)
	}
}

func TestBuildFiltersUnknownName(t *testing.T) {
	_, err := BuildFilters([]string{"NoSuchFilter"}, nil)
	if err == nil {
		t.Fatalf("got: nil\nwant: error")
	}
	if !strongerrors.IsInvalidArgument(err) {
		t.Errorf("got: %+v\nwant: an InvalidArgument error", err)
	}
}

func TestBuildFiltersMissingVolumeGetter(t *testing.T) {
	_, err := BuildFilters([]string{"VolumeAffinityFilter"}, nil)
	if err == nil {
		t.Fatalf("got: nil\nwant: error")
	}
	if !strongerrors.IsInvalidArgument(err) {
		t.Errorf("got: %+v\nwant: an InvalidArgument error", err)
	}
}
