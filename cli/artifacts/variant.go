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
package artifacts

import (
	"fmt"

	"github.com/juju/errors"
)

// Variant selects the build flavor of the Renode portable package.
type Variant int

const (
	MonoPortable Variant = iota
	DotnetPortable
)

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "mono-portable":
		return MonoPortable, nil
	case "dotnet-portable":
		return DotnetPortable, nil
	}
	return 0, errors.NotValidf("renode variant %q", s)
}

func (v Variant) String() string {
	switch v {
	case MonoPortable:
		return "mono-portable"
	case DotnetPortable:
		return "dotnet-portable"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// PackageName returns the archive name the builds server uses for this
// variant. version is an explicit version token or "latest", which the
// server resolves on its side.
func (v Variant) PackageName(version string) string {
	switch v {
	case MonoPortable:
		return fmt.Sprintf("renode-%s.linux-portable.tar.gz", version)
	case DotnetPortable:
		return fmt.Sprintf("renode-%s.linux-portable-dotnet.tar.gz", version)
	}
	panic(fmt.Sprintf("unknown variant %d", int(v)))
}
