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
package artifacts

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/juju/errors"
)

const (
	// ConfigFileName is the resolver state inside the artifacts dir: a JSON
	// object mapping variant tag to the install directory of the last
	// download. The format is relied upon by other tooling, do not change.
	ConfigFileName = "renode-run.json"

	// DownloadDirName is the subdirectory of the artifacts dir that holds
	// downloaded builds, one subdirectory per variant.
	DownloadDirName = "renode-run.download"

	// ExecutableName inside an install directory. Its presence is the only
	// validity check performed on a recorded entry.
	ExecutableName = "renode"
)

// Config maps variant tag to the absolute path of an extracted Renode
// installation. A missing key means the variant was never downloaded.
type Config map[string]string

// LoadConfig reads the config at path. An absent file is an empty config.
func LoadConfig(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return nil, errors.Trace(err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Annotatef(err, "invalid config %s", path)
	}
	if c == nil {
		c = Config{}
	}
	return c, nil
}

// Save writes the whole map back. Callers must load-merge-save so entries
// of other variants are preserved.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Trace(err)
	}
	return nil
}
