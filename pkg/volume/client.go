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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cpuguy83/strongerrors"
	"github.com/pkg/errors"

	"github.com/volsched/volsched/pkg/request"
)

// Client is a Getter backed by the volume service's REST API.
// Authentication beyond caller identity headers (tokens, retries, connection
// pooling) belongs to the deployment's HTTP layer, not here.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new Client for the volume service at endpoint.
// Each lookup is bounded by the given timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get implements Getter interface.
// It maps a 404 response to a strongerrors.NotFound error; every other
// failure (transport error, unexpected status, malformed body) is returned
// as a plain error.
func (c *Client) Get(ctx context.Context, rctx request.Context, id string) (*Volume, error) {
	url := fmt.Sprintf("%s/volumes/%s", c.endpoint, id)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for volume %s", id)
	}
	req = req.WithContext(ctx)

	req.Header.Set("X-User-Id", rctx.UserID)
	req.Header.Set("X-Project-Id", rctx.ProjectID)
	if rctx.Admin {
		req.Header.Set("X-Roles", "admin")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "getting volume %s", id)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, strongerrors.NotFound(errors.Errorf("volume %s not found", id))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("getting volume %s: unexpected status %q", id, resp.Status)
	}

	// The volume service wraps the resource in a "volume" object.
	var payload struct {
		Volume Volume `json:"volume"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(err, "decoding volume %s", id)
	}

	return &payload.Volume, nil
}

var _ = Getter(&Client{})
