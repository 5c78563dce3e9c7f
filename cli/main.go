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
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/antmicro/renode-run/cli/ourutil"
	"github.com/antmicro/renode-run/common/pflagenv"
	"github.com/antmicro/renode-run/version"
)

const (
	envPrefix = "RENODE_RUN_"
)

var (
	versionFlag = flag.Bool("version", false, "Print version and exit")
	helpFull    = flag.Bool("helpfull", false, "Show full help, including advanced flags")
)

var (
	commands = []command{
		{"download", downloadCmd, `Download a Renode portable build (Linux only)`, nil,
			[]string{"artifacts-path", "path", "variant", "direct", "builds-url"}},
		{"demo", demoCmd, `Run a Zephyr demo from precompiled binaries`, nil,
			[]string{"artifacts-path", "binary", "generate-repl", "variant", "renode-options", "dashboard-url"}},
		{"exec", execCmd, `Resolve Renode and run it with the given arguments`, nil,
			[]string{"artifacts-path", "variant", "renode-options", "no-download", "no-system-renode"}},
		{"list", listCmd, `List Renode builds installed in the artifacts directory`, nil,
			[]string{"artifacts-path", "variant"}},
		{"dashboard", dashboardCmd, `Open the Zephyr dashboard in a browser`, nil,
			[]string{"dashboard-url"}},
	}
)

type command struct {
	name     string
	handler  handler
	short    string
	required []string
	optional []string
}

type handler func() error

func run() error {
	if flag.Arg(0) == "" {
		// Bare invocation: resolve Renode and start it interactively.
		return runRenode(nil)
	}
	for _, c := range commands {
		if c.name == flag.Arg(0) {
			if err := checkFlags(c.required); err != nil {
				return err
			}
			return c.handler()
		}
	}
	usage()
	return errors.Errorf("unknown command %q", flag.Arg(0))
}

func main() {
	initFlags()
	flag.Parse()
	pflagenv.Parse(envPrefix)

	if *helpFull {
		unhideFlags()
		usage()
		return
	} else if *versionFlag {
		fmt.Printf(
			"%s\nVersion: %s\nBuild ID: %s\n",
			"The Renode launch tool", version.Version, version.BuildId,
		)
		return
	}

	if err := run(); err != nil {
		glog.Infof("Error: %+v", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		code := 1
		if ec := ourutil.CmdExitCode(err); ec > 0 {
			// The simulator itself failed; hand its exit code through.
			code = ec
		}
		os.Exit(code)
	}
}
