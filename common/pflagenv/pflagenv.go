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
// Package pflagenv fills unset flags from the environment, so that e.g.
// --artifacts-path can also be given as RENODE_RUN_ARTIFACTS_PATH.
package pflagenv

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// ParseFlagSet goes through all flags of fs that were not set on the
// command line and, for each one that has a corresponding environment
// variable (uppercased flag name, dashes replaced with underscores,
// prepended with envPrefix), sets the flag from it.
//
// Must be called after fs.Parse.
func ParseFlagSet(fs *pflag.FlagSet, envPrefix string) {
	// The flag package cannot tell "set to the default value" from "not set
	// at all", so collect all names first and drop the ones that were set.
	nonset := make(map[string]*pflag.Flag)
	fs.VisitAll(func(f *pflag.Flag) {
		nonset[f.Name] = f
	})
	fs.Visit(func(f *pflag.Flag) {
		delete(nonset, f.Name)
	})

	for name, f := range nonset {
		if v := os.Getenv(envName(name, envPrefix)); v != "" {
			f.Value.Set(v)
			f.Changed = true
		}
	}
}

// Parse is ParseFlagSet on pflag.CommandLine.
func Parse(envPrefix string) {
	ParseFlagSet(pflag.CommandLine, envPrefix)
}

func envName(flagName, envPrefix string) string {
	return envPrefix + strings.Replace(strings.ToUpper(flagName), "-", "_", -1)
}
