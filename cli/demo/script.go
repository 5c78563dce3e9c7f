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
// Package demo builds Renode startup scripts for the precompiled Zephyr
// demos published on the dashboard.
package demo

import (
	"bytes"
	"os"
	"strings"
	"text/template"

	"github.com/juju/errors"

	"github.com/antmicro/renode-run/cli/dashboard"
	"github.com/antmicro/renode-run/cli/ourutil"
)

// The UART hook opens an analyzer window for every UART that actually
// receives output, so the demo shows its console without knowing the
// platform's UART names up front.
var scriptTemplate = template.Must(template.New("script").Parse(`
using sysbus
mach create "{{.Platform}}"

machine LoadPlatformDescription @{{.Repl}}

python
"""
from Antmicro.Renode.Peripherals.UART import IUART
uarts = self.Machine.GetPeripheralsOfType[IUART]()

shown = dict()

def bind_function(uartName):
    def func(char):
        if uartName not in shown:
            monitor.Parse("showAnalyzer "+uartName)
        shown[uartName] = True
    return func

for uart in uarts:
    uartName = clr.Reference[str]()
    self.Machine.TryGetAnyName(uart, uartName)
    onReceived = bind_function(uartName.Value)
    uart.CharReceived += onReceived
"""

macro reset
"""
    sysbus LoadELF @{{.Binary}}
"""

runMacro $reset
echo "Use 'start' to run the demo"
`))

type ScriptParams struct {
	Platform string
	// Repl is a platform description: a local file or a URL.
	Repl string
	// Binary is the ELF to load: a local file or a URL.
	Binary string
}

// RenderScript produces the Renode startup script for the demo.
func RenderScript(p ScriptParams) (string, error) {
	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, p); err != nil {
		return "", errors.Trace(err)
	}
	return buf.String(), nil
}

type Options struct {
	Platform string
	// Binary is a local ELF, a URL, or the name of a precompiled dashboard
	// sample (e.g. "shell_module").
	Binary string
	// GenerateRepl produces the platform description locally from the
	// devicetree with the external dts2repl tool instead of using the
	// dashboard's pregenerated one.
	GenerateRepl bool
}

// Script assembles the startup script for the platform, fetching resources
// from the dashboard as needed. Returns the script text.
func Script(dc *dashboard.Client, opts Options) (string, error) {
	zephyr, err := dc.ZephyrVersion()
	if err != nil {
		return "", errors.Trace(err)
	}

	binaryName := opts.Binary
	binary := opts.Binary
	if _, err := os.Stat(binary); err != nil {
		ourutil.Reportf("Binary name `%s` is not a local file, trying remote.", binary)
		if !strings.HasPrefix(binary, "http") {
			binary = dc.BaseURL + dashboard.BinaryPath(zephyr, opts.Platform, binaryName)
		}
	} else {
		// A local binary still needs the platform resources (repl, dts);
		// the hello_world sample is the most vanilla source for them.
		binaryName = "hello_world"
	}

	var repl string
	if opts.GenerateRepl {
		repl, err = generateRepl(dc, zephyr, opts.Platform, binaryName)
		if err != nil {
			return "", errors.Trace(err)
		}
	} else {
		renodeVersion, err := dc.RenodeVersion()
		if err != nil {
			return "", errors.Trace(err)
		}
		repl = dc.BaseURL + dashboard.ReplPath(zephyr, renodeVersion, opts.Platform, binaryName)
	}

	return RenderScript(ScriptParams{
		Platform: opts.Platform,
		Repl:     repl,
		Binary:   binary,
	})
}

// generateRepl downloads the platform devicetree and runs dts2repl on it.
// dts2repl is an external tool and must be on $PATH.
func generateRepl(dc *dashboard.Client, zephyr, platform, binaryName string) (string, error) {
	dts := platform + ".dts"
	if err := dc.Fetch(dashboard.DtsPath(zephyr, platform, binaryName), dts); err != nil {
		return "", errors.Trace(err)
	}

	repl := platform + ".repl"
	if err := ourutil.RunCmd(ourutil.CmdOutOnError, "dts2repl", "--output", repl, dts); err != nil {
		return "", errors.Annotatef(err, "dts2repl failed; is it installed and on $PATH?")
	}
	return repl, nil
}
