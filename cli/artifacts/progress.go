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
	"io"
	"time"
)

// Progress lines are emitted at most once per this interval, plus once
// when the transfer completes.
const progressInterval = time.Second

const megabyte = 1024 * 1024.0

// progressWriter counts bytes passing through it and periodically prints
// a "Downloaded X / Y" line. total < 0 means the size is unknown
// (chunked response, no Content-Length).
type progressWriter struct {
	out     io.Writer
	total   int64
	written int64
	start   time.Time
	last    time.Time
	now     func() time.Time
}

func newProgressWriter(out io.Writer, total int64) *progressWriter {
	pw := &progressWriter{out: out, total: total, now: time.Now}
	pw.start = pw.now()
	return pw
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	pw.written += int64(len(p))
	t := pw.now()
	done := pw.total >= 0 && pw.written >= pw.total
	if !done && t.Sub(pw.last) < progressInterval {
		return len(p), nil
	}
	pw.last = t
	pw.report(t)
	return len(p), nil
}

func (pw *progressWriter) report(t time.Time) {
	elapsed := t.Sub(pw.start).Truncate(time.Second)
	current := float64(pw.written) / megabyte
	if pw.total < 0 {
		fmt.Fprintf(pw.out, "\rDownloaded %.2fMB (time elapsed: %s)...", current, elapsed)
		return
	}
	total := float64(pw.total) / megabyte
	if current > total {
		current = total
	}
	fmt.Fprintf(pw.out, "\rDownloaded %.2fMB / %.2fMB (time elapsed: %s)...", current, total, elapsed)
}
