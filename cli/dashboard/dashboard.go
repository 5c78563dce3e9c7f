//
// Copyright (c) 2024 Antmicro
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
//
// Package dashboard talks to the Zephyr dashboard service: the board
// catalog and the version endpoints for the precompiled demo binaries.
package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/antmicro/renode-run/version"
)

// DefaultURL is the public dashboard instance.
const DefaultURL = "https://new-zephyr-dashboard.renode.io"

// Board is one entry of the dashboard's demo result catalog.
type Board struct {
	Name string `json:"board_name"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Version endpoints are hit once per client; the values cannot change
	// within a single invocation.
	zephyrVersion string
	renodeVersion string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

func (c *Client) get(path string) (*http.Response, error) {
	url := c.BaseURL + path
	glog.Infof("GET %s", url)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header.Set("User-Agent", version.GetUserAgent())
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("got %d when accessing %s", resp.StatusCode, url)
	}
	return resp, nil
}

func (c *Client) getString(path string) (string, error) {
	resp, err := c.get(path)
	if err != nil {
		return "", errors.Trace(err)
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Trace(err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ZephyrVersion returns the Zephyr tree version the dashboard's current
// artifacts were built from.
func (c *Client) ZephyrVersion() (string, error) {
	if c.zephyrVersion != "" {
		return c.zephyrVersion, nil
	}
	v, err := c.getString("/zephyr_sim/latest")
	if err != nil {
		return "", errors.Trace(err)
	}
	c.zephyrVersion = v
	return v, nil
}

// RenodeVersion returns the Renode version the dashboard's simulation
// artifacts were produced with.
func (c *Client) RenodeVersion() (string, error) {
	if c.renodeVersion != "" {
		return c.renodeVersion, nil
	}
	zephyr, err := c.ZephyrVersion()
	if err != nil {
		return "", errors.Trace(err)
	}
	v, err := c.getString("/zephyr_sim/" + zephyr + "/latest")
	if err != nil {
		return "", errors.Trace(err)
	}
	c.renodeVersion = v
	return v, nil
}

// Boards fetches the demo board catalog.
func (c *Client) Boards() ([]Board, error) {
	resp, err := c.get("/results-shell_module_all.json")
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer resp.Body.Close()

	var boards []Board
	if err := json.NewDecoder(resp.Body).Decode(&boards); err != nil {
		return nil, errors.Annotatef(err, "invalid board catalog")
	}
	return boards, nil
}

// HasBoard reports whether the catalog contains the platform.
func HasBoard(boards []Board, platform string) bool {
	for _, b := range boards {
		if b.Name == platform {
			return true
		}
	}
	return false
}

// Fetch downloads path from the dashboard into the local file dest.
func (c *Client) Fetch(path, dest string) error {
	resp, err := c.get(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer resp.Body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Trace(err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return errors.Annotatef(err, "failed to fetch %s", path)
	}
	return errors.Trace(out.Close())
}

// BinaryPath is the dashboard location of a precompiled demo ELF.
func BinaryPath(zephyrVersion, platform, binary string) string {
	return fmt.Sprintf("/zephyr/%s/%s/%s/%s.elf", zephyrVersion, platform, binary, binary)
}

// DtsPath is the dashboard location of a platform's flattened devicetree.
func DtsPath(zephyrVersion, platform, binary string) string {
	return fmt.Sprintf("/zephyr/%s/%s/%s/%s.dts", zephyrVersion, platform, binary, binary)
}

// ReplPath is the dashboard location of a pregenerated platform
// description for the given Zephyr/Renode version pair.
func ReplPath(zephyrVersion, renodeVersion, platform, binary string) string {
	return fmt.Sprintf("/zephyr_sim/%s/%s/%s/%s/%s.repl", zephyrVersion, renodeVersion, platform, binary, binary)
}
