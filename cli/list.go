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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	goversion "github.com/mcuadros/go-version"

	"github.com/antmicro/renode-run/cli/artifacts"
	"github.com/antmicro/renode-run/cli/common/paths"
	"github.com/antmicro/renode-run/cli/flags"
	"github.com/antmicro/renode-run/cli/ourutil"
)

// listCmd prints the builds downloaded for the variant, newest first.
// Previous versions are never deleted by this tool, so there may be many.
func listCmd() error {
	variant, err := artifacts.ParseVariant(*flags.Variant)
	if err != nil {
		return errors.Trace(err)
	}
	artifactsDir, err := paths.ArtifactsDir(*flags.ArtifactsPath)
	if err != nil {
		return errors.Trace(err)
	}

	cfg, err := artifacts.LoadConfig(filepath.Join(artifactsDir, artifacts.ConfigFileName))
	if err != nil {
		return errors.Trace(err)
	}
	current := cfg[variant.String()]

	variantDir := filepath.Join(artifactsDir, artifacts.DownloadDirName, variant.String())
	fis, err := ioutil.ReadDir(variantDir)
	if err != nil {
		if os.IsNotExist(err) {
			ourutil.Reportf("No downloaded builds for %s in %s", variant, artifactsDir)
			return nil
		}
		return errors.Trace(err)
	}

	var versions []string
	for _, fi := range fis {
		if fi.IsDir() && strings.HasPrefix(fi.Name(), "renode-") {
			versions = append(versions, strings.TrimPrefix(fi.Name(), "renode-"))
		}
	}
	goversion.Sort(versions)

	for i := len(versions) - 1; i >= 0; i-- {
		dir := filepath.Join(variantDir, "renode-"+versions[i])
		marker := " "
		if dir == current {
			marker = "*"
		}
		ourutil.Reportf("%s %s\t%s", marker, versions[i], dir)
	}
	return nil
}
