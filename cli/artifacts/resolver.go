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
// Package artifacts locates a usable Renode executable for a requested
// build variant, or downloads one. The fallback order is fixed: the
// install recorded in the artifacts dir config, then $PATH, then a fresh
// download from the builds server.
package artifacts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/antmicro/renode-run/cli/ourutil"
)

type ResolveOptions struct {
	// ArtifactsDir holds the resolver config and downloaded builds.
	ArtifactsDir string
	Variant      Variant
	// AllowDownload permits fetching from the builds server when no local
	// copy is found.
	AllowDownload bool
	// AllowSystemLookup permits falling back to a renode binary in $PATH.
	// Such a hit is not recorded in the config.
	AllowSystemLookup bool
	// BuildsURL overrides DefaultBuildsURL for downloads.
	BuildsURL string
}

// Resolve returns the path of a renode executable for the requested
// variant. When all tiers fail it returns a NotFound error; the caller
// owns exit codes and user messaging.
func Resolve(opts ResolveOptions) (string, error) {
	configPath := filepath.Join(opts.ArtifactsDir, ConfigFileName)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return "", errors.Trace(err)
	}
	if dir, found := cfg[opts.Variant.String()]; found {
		exe := filepath.Join(dir, ExecutableName)
		if _, err := os.Stat(exe); err == nil {
			ourutil.Reportf("Renode found in %s", exe)
			return exe, nil
		}
		// A recorded install that was deleted by hand is a miss, not an
		// error; continue down the fallback chain.
		ourutil.Reportf("Renode download listed in %s, but the target directory %s was not found", configPath, dir)
	}

	if opts.AllowSystemLookup {
		glog.Infof("looking for %s in $PATH", ExecutableName)
		if exe, err := exec.LookPath(ExecutableName); err == nil {
			ourutil.Reportf("Renode found in $PATH: %s. If you want to use the latest Renode version, consider running 'renode-run download'", exe)
			return exe, nil
		}
	}

	if opts.AllowDownload {
		ourutil.Reportf("Renode not found. Downloading...")
		if _, err := Download(DownloadOptions{
			TargetDir:  filepath.Join(opts.ArtifactsDir, DownloadDirName),
			ConfigPath: configPath,
			Variant:    opts.Variant,
			Version:    LatestVersion,
			BuildsURL:  opts.BuildsURL,
		}); err != nil {
			return "", errors.Trace(err)
		}
		// One more pass with downloading off: a download that reported
		// success but left no usable binary must surface as a failure, not
		// loop forever.
		opts.AllowDownload = false
		return Resolve(opts)
	}

	return "", errors.NewNotFound(nil, fmt.Sprintf(
		"Renode not found (variant %s); run 'renode-run download' or visit https://builds.renode.io", opts.Variant))
}
