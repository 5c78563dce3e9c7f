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
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/juju/errors"
)

// DefaultArtifactsDir is where downloaded Renode builds and the resolver
// state live unless overridden with --artifacts-path.
const DefaultArtifactsDir = "~/.config/renode"

// NormalizePath expands a leading tilde and absolutizes the path.
func NormalizePath(p string) (string, error) {
	var err error

	if p == "" {
		return "", nil
	}

	if p[0] == '~' {
		// user.Current() doesn't play nicely with static builds, so home
		// comes from the environment.
		homeEnvName := "HOME"
		if runtime.GOOS == "windows" {
			homeEnvName = "USERPROFILE"
		}
		p = os.Getenv(homeEnvName) + p[1:]
	}

	p, err = filepath.Abs(p)
	if err != nil {
		return "", errors.Trace(err)
	}

	return p, nil
}

// ArtifactsDir normalizes the given artifacts dir value and makes sure the
// directory exists.
func ArtifactsDir(p string) (string, error) {
	p, err := NormalizePath(p)
	if err != nil {
		return "", errors.Trace(err)
	}
	if err := os.MkdirAll(p, 0777); err != nil {
		return "", errors.Trace(err)
	}
	return p, nil
}
