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
package main

import (
	"path/filepath"

	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/antmicro/renode-run/cli/artifacts"
	"github.com/antmicro/renode-run/cli/common/paths"
	"github.com/antmicro/renode-run/cli/flags"
)

func downloadCmd() error {
	variant, err := artifacts.ParseVariant(*flags.Variant)
	if err != nil {
		return errors.Trace(err)
	}
	artifactsDir, err := paths.ArtifactsDir(*flags.ArtifactsPath)
	if err != nil {
		return errors.Trace(err)
	}

	targetDir := filepath.Join(artifactsDir, artifacts.DownloadDirName)
	if *flags.DownloadPath != "" {
		targetDir, err = paths.NormalizePath(*flags.DownloadPath)
		if err != nil {
			return errors.Trace(err)
		}
	}

	// Optional positional argument: an explicit Renode version.
	renodeVersion := artifacts.LatestVersion
	if flag.Arg(1) != "" {
		renodeVersion = flag.Arg(1)
	}

	_, err = artifacts.Download(artifacts.DownloadOptions{
		TargetDir:  targetDir,
		ConfigPath: filepath.Join(artifactsDir, artifacts.ConfigFileName),
		Variant:    variant,
		Version:    renodeVersion,
		Direct:     *flags.Direct,
		BuildsURL:  *flags.BuildsURL,
	})
	return errors.Trace(err)
}
