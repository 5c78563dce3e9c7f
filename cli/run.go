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
	"github.com/juju/errors"
	shellwords "github.com/mattn/go-shellwords"
	flag "github.com/spf13/pflag"

	"github.com/antmicro/renode-run/cli/artifacts"
	"github.com/antmicro/renode-run/cli/common/paths"
	"github.com/antmicro/renode-run/cli/flags"
	"github.com/antmicro/renode-run/cli/ourutil"
)

// resolveRenode locates (or fetches) a renode executable according to the
// global flags.
func resolveRenode() (string, error) {
	variant, err := artifacts.ParseVariant(*flags.Variant)
	if err != nil {
		return "", errors.Trace(err)
	}
	artifactsDir, err := paths.ArtifactsDir(*flags.ArtifactsPath)
	if err != nil {
		return "", errors.Trace(err)
	}
	return artifacts.Resolve(artifacts.ResolveOptions{
		ArtifactsDir:      artifactsDir,
		Variant:           variant,
		AllowDownload:     !*flags.NoDownload,
		AllowSystemLookup: !*flags.NoSystemRenode,
		BuildsURL:         *flags.BuildsURL,
	})
}

// runRenode starts the simulator with --renode-options plus the given
// trailing arguments, stdin attached.
func runRenode(extraArgs []string) error {
	exe, err := resolveRenode()
	if err != nil {
		return errors.Trace(err)
	}

	args := []string{exe}
	opts, err := shellwords.Parse(*flags.RenodeOptions)
	if err != nil {
		return errors.Annotatef(err, "invalid --renode-options")
	}
	args = append(args, opts...)
	args = append(args, extraArgs...)

	return errors.Trace(ourutil.RunInteractive(args...))
}

func execCmd() error {
	// Everything after "exec" goes to the simulator untouched.
	return runRenode(flag.Args()[1:])
}
