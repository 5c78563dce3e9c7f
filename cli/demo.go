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
	"strings"

	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/antmicro/renode-run/cli/dashboard"
	"github.com/antmicro/renode-run/cli/demo"
	"github.com/antmicro/renode-run/cli/flags"
	"github.com/antmicro/renode-run/cli/ourutil"
)

func demoCmd() error {
	if flag.Arg(1) == "" {
		return errors.Errorf("platform name is required, e.g. 'renode-run demo stm32f4_discovery'")
	}
	platform := flag.Arg(1)

	dc := dashboard.NewClient(*flags.DashboardURL)
	boards, err := dc.Boards()
	if err != nil {
		return errors.Trace(err)
	}
	if !dashboard.HasBoard(boards, platform) {
		names := make([]string, len(boards))
		for i, b := range boards {
			names[i] = b.Name
		}
		ourutil.Reportf("Platform %q not in the Zephyr platforms list on the server.", platform)
		ourutil.Reportf("Available platforms:\n%s", strings.Join(names, "\n"))
		return errors.NotFoundf("platform %q", platform)
	}

	script, err := demo.Script(dc, demo.Options{
		Platform:     platform,
		Binary:       *flags.Binary,
		GenerateRepl: *flags.GenerateRepl,
	})
	if err != nil {
		return errors.Trace(err)
	}

	tmpf, err := ioutil.TempFile("", "renode-run-demo-")
	if err != nil {
		return errors.Trace(err)
	}
	defer os.Remove(tmpf.Name())
	if _, err := tmpf.WriteString(script); err != nil {
		tmpf.Close()
		return errors.Trace(err)
	}
	if err := tmpf.Close(); err != nil {
		return errors.Trace(err)
	}

	return runRenode([]string{tmpf.Name()})
}
