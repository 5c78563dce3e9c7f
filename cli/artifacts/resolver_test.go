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
	"io/ioutil"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/juju/errors"
)

func installRenode(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0777); err != nil {
		t.Fatal(err)
	}
	exe := filepath.Join(dir, ExecutableName)
	if err := ioutil.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return exe
}

func TestResolveCacheHitDoesNotTouchNetwork(t *testing.T) {
	artifactsDir, _ := testEnv(t)
	srv, hits := serveArchive(t, renodeArchive(t))

	install := filepath.Join(artifactsDir, DownloadDirName, "mono-portable", "renode-"+testVersion)
	exe := installRenode(t, install)
	cfg := Config{MonoPortable.String(): install}
	if err := cfg.Save(filepath.Join(artifactsDir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(ResolveOptions{
		ArtifactsDir:  artifactsDir,
		Variant:       MonoPortable,
		AllowDownload: true,
		BuildsURL:     srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != exe {
		t.Errorf("got %q, want %q", got, exe)
	}
	if n := atomic.LoadInt32(hits); n != 0 {
		t.Errorf("cache hit performed %d network accesses", n)
	}
}

func TestResolveStaleEntryFallsThroughToDownload(t *testing.T) {
	artifactsDir, _ := testEnv(t)
	srv, hits := serveArchive(t, renodeArchive(t))

	// Recorded install was deleted by hand.
	cfg := Config{MonoPortable.String(): filepath.Join(artifactsDir, "gone")}
	if err := cfg.Save(filepath.Join(artifactsDir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(ResolveOptions{
		ArtifactsDir:  artifactsDir,
		Variant:       MonoPortable,
		AllowDownload: true,
		BuildsURL:     srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(artifactsDir, DownloadDirName, "mono-portable", "renode-"+testVersion, ExecutableName)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("expected 1 download, got %d", n)
	}
}

func TestResolveStaleEntryAllTiersDisabled(t *testing.T) {
	artifactsDir, _ := testEnv(t)

	cfg := Config{MonoPortable.String(): "/opt/old"}
	if err := cfg.Save(filepath.Join(artifactsDir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve(ResolveOptions{
		ArtifactsDir: artifactsDir,
		Variant:      MonoPortable,
	})
	if err == nil || !errors.IsNotFound(errors.Cause(err)) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestResolveNothingFoundCreatesNoFiles(t *testing.T) {
	artifactsDir, _ := testEnv(t)

	_, err := Resolve(ResolveOptions{
		ArtifactsDir: artifactsDir,
		Variant:      MonoPortable,
	})
	if err == nil || !errors.IsNotFound(errors.Cause(err)) {
		t.Errorf("expected NotFound, got %v", err)
	}

	fis, err := ioutil.ReadDir(artifactsDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, fi := range fis {
		t.Errorf("unexpected file created: %s", fi.Name())
	}
}

func TestResolveSystemLookupNotPersisted(t *testing.T) {
	artifactsDir, _ := testEnv(t)

	bindir := filepath.Join(artifactsDir, "bin")
	exe := installRenode(t, bindir)
	oldPath := os.Getenv("PATH")
	os.Setenv("PATH", bindir)
	defer os.Setenv("PATH", oldPath)

	got, err := Resolve(ResolveOptions{
		ArtifactsDir:      artifactsDir,
		Variant:           MonoPortable,
		AllowSystemLookup: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != exe {
		t.Errorf("got %q, want %q", got, exe)
	}
	// A $PATH hit is not recorded; the next invocation searches again.
	if _, err := os.Stat(filepath.Join(artifactsDir, ConfigFileName)); !os.IsNotExist(err) {
		t.Errorf("system lookup result was persisted into the config")
	}
}

func TestResolveDownloadWithoutUsableBinaryFails(t *testing.T) {
	artifactsDir, _ := testEnv(t)

	// A "successful" download that contains no renode executable must
	// surface as NotFound instead of looping.
	top := "renode_" + testVersion + "-portable"
	srv, hits := serveArchive(t, makeArchive(t, []tarEntry{
		{name: top + "/", mode: 0755},
		{name: top + "/README", body: "no binary here"},
	}))

	_, err := Resolve(ResolveOptions{
		ArtifactsDir:  artifactsDir,
		Variant:       MonoPortable,
		AllowDownload: true,
		BuildsURL:     srv.URL,
	})
	if err == nil || !errors.IsNotFound(errors.Cause(err)) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("expected exactly 1 download attempt, got %d", n)
	}
}
