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
	"testing"

	"github.com/juju/errors"
)

func TestParseVariant(t *testing.T) {
	for i, c := range []struct {
		s   string
		v   Variant
		err bool
	}{
		{"mono-portable", MonoPortable, false},
		{"dotnet-portable", DotnetPortable, false},
		{"", 0, true},
		{"portable", 0, true},
		{"MONO-PORTABLE", 0, true},
	} {
		v, err := ParseVariant(c.s)
		if c.err {
			if err == nil {
				t.Errorf("%d %q: expected an error", i, c.s)
			} else if !errors.IsNotValid(err) {
				t.Errorf("%d %q: expected NotValid, got %v", i, c.s, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%d %q: %s", i, c.s, err)
		}
		if v != c.v {
			t.Errorf("%d %q: got %v, want %v", i, c.s, v, c.v)
		}
		if got, want := v.String(), c.s; got != want {
			t.Errorf("%d: String() got %q, want %q", i, got, want)
		}
	}
}

func TestPackageName(t *testing.T) {
	for i, c := range []struct {
		v       Variant
		version string
		res     string
	}{
		{MonoPortable, "latest", "renode-latest.linux-portable.tar.gz"},
		{MonoPortable, "1.15.0", "renode-1.15.0.linux-portable.tar.gz"},
		{DotnetPortable, "latest", "renode-latest.linux-portable-dotnet.tar.gz"},
		{DotnetPortable, "1.15.1", "renode-1.15.1.linux-portable-dotnet.tar.gz"},
	} {
		if got, want := c.v.PackageName(c.version), c.res; got != want {
			t.Errorf("%d: got %q, want %q", i, got, want)
		}
	}
}

func TestExtractVersion(t *testing.T) {
	for i, c := range []struct {
		name string
		res  string
		err  bool
	}{
		{"renode_1.15.0+20240601git0123abcd-portable", "1.15.0+20240601git0123abcd", false},
		{"renode-1.15.2+20240811gitabcdef012/", "1.15.2+20240811gitabcdef012", false},
		{"renode-portable", "", true},
		{"renode-1.15.0", "", true},
		{"renode-1.15.0+2024git01234567", "", true},
		{"renode-1.15.0+20240601gitXYZ", "", true},
	} {
		v, err := ExtractVersion(c.name)
		if c.err {
			if err == nil || !errors.IsNotValid(err) {
				t.Errorf("%d %q: expected NotValid, got %v, %v", i, c.name, v, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%d %q: %s", i, c.name, err)
		}
		if v != c.res {
			t.Errorf("%d %q: got %q, want %q", i, c.name, v, c.res)
		}
	}
}
