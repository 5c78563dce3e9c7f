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
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/antmicro/renode-run/cli/ourutil"
	"github.com/antmicro/renode-run/version"
)

const (
	// DefaultBuildsURL is the Renode nightly builds server. The archive
	// naming scheme on it is an external contract, see Variant.PackageName.
	DefaultBuildsURL = "https://builds.renode.io"

	// LatestVersion makes the builds server pick the newest build.
	LatestVersion = "latest"
)

// Renode version tokens look like "<semver>+<YYYYMMDD>git<8-9 hex digits>",
// e.g. "1.15.0+20240601git0123abcd". The naming convention belongs to the
// builds server, so anything that doesn't match is rejected rather than
// guessed at.
var renodeVersionRegexp = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+\+[0-9]{8}git[0-9a-fA-F]{8,9}`)

// ExtractVersion pulls the Renode version token out of an archive member
// name. Returns a NotValid error when the name carries no version.
func ExtractVersion(name string) (string, error) {
	m := renodeVersionRegexp.FindString(name)
	if m == "" {
		return "", errors.NotValidf("renode version string in %q", name)
	}
	return m, nil
}

type DownloadOptions struct {
	// TargetDir receives the extracted build: directly in Direct mode,
	// under <variant>/renode-<version> otherwise.
	TargetDir string
	// ConfigPath is the resolver config to record the install into.
	ConfigPath string
	Variant    Variant
	// Version is an explicit version token or empty/LatestVersion.
	Version string
	// Direct strips the archive's top-level directory so the contents land
	// straight in TargetDir.
	Direct bool
	// BuildsURL overrides DefaultBuildsURL.
	BuildsURL string
}

// Download fetches the Renode portable archive for the variant, extracts
// it and records the install directory in the config. The downloaded
// archive is always removed, on failure paths too. If the destination
// already holds a renode executable, extraction and the config update are
// skipped. Returns the install directory.
func Download(opts DownloadOptions) (string, error) {
	if runtime.GOOS != "linux" {
		return "", errors.NewNotSupported(nil, fmt.Sprintf(
			"Renode can only be automatically downloaded on Linux; on %s please visit https://builds.renode.io and install the latest package for your system", runtime.GOOS))
	}

	if opts.Version == "" {
		opts.Version = LatestVersion
	}
	if opts.BuildsURL == "" {
		opts.BuildsURL = DefaultBuildsURL
	}

	ourutil.Reportf("Downloading Renode (%s)...", opts.Variant)

	pkgURL := strings.TrimSuffix(opts.BuildsURL, "/") + "/" + opts.Variant.PackageName(opts.Version)
	archive, err := fetchArchive(pkgURL)
	if err != nil {
		return "", errors.Annotatef(err, "Renode could not be downloaded; check your internet connection and the requested version (if specified)")
	}
	defer os.Remove(archive)

	ourutil.Reportf("Download finished!")

	installDir, skipped, err := extract(archive, opts)
	if err != nil {
		return "", errors.Trace(err)
	}
	if skipped {
		ourutil.Reportf("Renode is already present in %s", installDir)
		return installDir, nil
	}
	ourutil.Reportf("Renode stored in %s", installDir)

	// Merge rather than replace, so entries of other variants survive.
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return "", errors.Trace(err)
	}
	cfg[opts.Variant.String()] = installDir
	if err := cfg.Save(opts.ConfigPath); err != nil {
		return "", errors.Trace(err)
	}

	return installDir, nil
}

// fetchArchive streams the package into a temp file, reporting progress.
// The temp file is cleaned up on failure; on success the caller owns it.
func fetchArchive(pkgURL string) (string, error) {
	tmpf, err := ioutil.TempFile("", "renode-run-")
	if err != nil {
		return "", errors.Trace(err)
	}
	defer tmpf.Close()

	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpf.Name())
		}
	}()

	req, err := http.NewRequest("GET", pkgURL, nil)
	if err != nil {
		return "", errors.Trace(err)
	}
	req.Header.Set("User-Agent", version.GetUserAgent())

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Trace(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("got %d when accessing %s", resp.StatusCode, pkgURL)
	}

	glog.Infof("fetching %s (%d bytes)", pkgURL, resp.ContentLength)

	pw := newProgressWriter(os.Stderr, resp.ContentLength)
	n, err := io.Copy(io.MultiWriter(tmpf, pw), resp.Body)
	os.Stderr.WriteString("\n")
	if err != nil {
		return "", errors.Trace(err)
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return "", errors.Errorf("expected %d bytes, got %d", resp.ContentLength, n)
	}

	ok = true
	return tmpf.Name(), nil
}

// extract unpacks the tar.gz archive. The first member's name supplies the
// version token; without one the archive is rejected before anything is
// written. Returns the install dir and whether extraction was skipped
// because the destination already has a renode executable.
func extract(archive string, opts DownloadOptions) (string, bool, error) {
	f, err := os.Open(archive)
	if err != nil {
		return "", false, errors.Trace(err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return "", false, errors.Annotatef(err, "invalid archive")
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	first, err := tr.Next()
	if err != nil {
		return "", false, errors.Annotatef(err, "invalid archive")
	}

	renodeVersion, err := ExtractVersion(first.Name)
	if err != nil {
		return "", false, errors.Trace(err)
	}

	installDir := opts.TargetDir
	if !opts.Direct {
		installDir = filepath.Join(opts.TargetDir, opts.Variant.String(), "renode-"+renodeVersion)
	}

	if _, err := os.Stat(filepath.Join(installDir, ExecutableName)); err == nil {
		return installDir, true, nil
	}

	if err := os.MkdirAll(installDir, 0777); err != nil {
		return "", false, errors.Trace(err)
	}

	// Members are rooted in the archive's top-level directory; that first
	// path component is stripped in both modes (the version already sits in
	// installDir in namespaced mode).
	for hdr := first; ; {
		if err := extractMember(tr, hdr, installDir); err != nil {
			return "", false, errors.Trace(err)
		}
		hdr, err = tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, errors.Annotatef(err, "invalid archive")
		}
	}

	return installDir, false, nil
}

func extractMember(tr *tar.Reader, hdr *tar.Header, installDir string) error {
	rel := stripFirstComponent(hdr.Name)
	if rel == "" {
		return nil // the top-level directory itself
	}
	if strings.HasPrefix(rel, "..") {
		return errors.NotValidf("archive member path %q", hdr.Name)
	}

	dest := filepath.Join(installDir, filepath.FromSlash(rel))

	switch hdr.Typeflag {
	case tar.TypeDir:
		return errors.Trace(os.MkdirAll(dest, os.FileMode(hdr.Mode)|0700))
	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(dest), 0777); err != nil {
			return errors.Trace(err)
		}
		if err := os.Symlink(hdr.Linkname, dest); err != nil && !os.IsExist(err) {
			return errors.Trace(err)
		}
		return nil
	case tar.TypeReg, tar.TypeRegA:
		if err := os.MkdirAll(filepath.Dir(dest), 0777); err != nil {
			return errors.Trace(err)
		}
		out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
		if err != nil {
			return errors.Trace(err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return errors.Annotatef(err, "failed to extract %s", hdr.Name)
		}
		return errors.Trace(out.Close())
	default:
		glog.V(1).Infof("skipping archive member %s (type %d)", hdr.Name, hdr.Typeflag)
		return nil
	}
}

// stripFirstComponent drops the leading path component of a slash-separated
// archive member name. Returns "" for the top-level directory itself.
func stripFirstComponent(name string) string {
	name = path.Clean(strings.TrimPrefix(name, "./"))
	i := strings.IndexByte(name, '/')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}
