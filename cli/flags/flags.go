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
package flags

import (
	flag "github.com/spf13/pflag"

	"github.com/antmicro/renode-run/cli/artifacts"
	"github.com/antmicro/renode-run/cli/common/paths"
	"github.com/antmicro/renode-run/cli/dashboard"
)

var (
	ArtifactsPath = flag.StringP("artifacts-path", "a", paths.DefaultArtifactsDir,
		"Directory to store downloaded Renode builds and the resolver state")
	Variant = flag.String("variant", artifacts.MonoPortable.String(),
		"Renode build flavor: mono-portable or dotnet-portable")
	BuildsURL = flag.String("builds-url", artifacts.DefaultBuildsURL,
		"Renode builds server")
	DashboardURL = flag.String("dashboard-url", dashboard.DefaultURL,
		"Zephyr dashboard server")

	DownloadPath = flag.StringP("path", "p", "",
		"Download target directory (default <artifacts-path>/renode-run.download)")
	Direct = flag.Bool("direct", false,
		"Extract the archive contents directly into --path, without a per-version subdirectory")

	NoDownload = flag.Bool("no-download", false,
		"Never download Renode; fail when no local copy is found")
	NoSystemRenode = flag.Bool("no-system-renode", false,
		"Ignore renode binaries found in $PATH")

	RenodeOptions = flag.String("renode-options", "",
		"Extra options for the Renode process, shell-quoted")

	Binary = flag.StringP("binary", "b", "shell_module",
		"Demo binary: local ELF, URL, or the name of a precompiled dashboard sample")
	GenerateRepl = flag.BoolP("generate-repl", "g", false,
		"Generate the platform description from the devicetree via the external dts2repl tool")
)
