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
package dashboard

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func testServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "renode-run/") {
			t.Errorf("unexpected User-Agent: %q", ua)
		}
		switch r.URL.Path {
		case "/zephyr_sim/latest":
			fmt.Fprintln(w, "3.6.0")
		case "/zephyr_sim/3.6.0/latest":
			fmt.Fprintln(w, "1.15.0")
		case "/results-shell_module_all.json":
			fmt.Fprint(w, `[{"board_name": "stm32f4_disco"}, {"board_name": "hifive1"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestVersionsMemoized(t *testing.T) {
	srv, hits := testServer(t)
	c := NewClient(srv.URL)

	for i := 0; i < 3; i++ {
		v, err := c.ZephyrVersion()
		if err != nil {
			t.Fatal(err)
		}
		if v != "3.6.0" {
			t.Errorf("zephyr version: got %q", v)
		}
		rv, err := c.RenodeVersion()
		if err != nil {
			t.Fatal(err)
		}
		if rv != "1.15.0" {
			t.Errorf("renode version: got %q", rv)
		}
	}

	// One request per endpoint, regardless of how often they're asked for.
	if got := atomic.LoadInt32(hits); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestBoards(t *testing.T) {
	srv, _ := testServer(t)
	c := NewClient(srv.URL)

	boards, err := c.Boards()
	if err != nil {
		t.Fatal(err)
	}
	if len(boards) != 2 {
		t.Fatalf("got %d boards", len(boards))
	}
	if !HasBoard(boards, "hifive1") {
		t.Errorf("hifive1 missing from %v", boards)
	}
	if HasBoard(boards, "no_such_board") {
		t.Errorf("unexpected board match")
	}
}

func TestErrorStatus(t *testing.T) {
	srv, _ := testServer(t)
	c := NewClient(srv.URL)

	if _, err := c.getString("/no/such/endpoint"); err == nil {
		t.Error("expected an error for 404")
	}
}

func TestPaths(t *testing.T) {
	if got, want := BinaryPath("3.6.0", "hifive1", "shell_module"), "/zephyr/3.6.0/hifive1/shell_module/shell_module.elf"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := DtsPath("3.6.0", "hifive1", "shell_module"), "/zephyr/3.6.0/hifive1/shell_module/shell_module.dts"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := ReplPath("3.6.0", "1.15.0", "hifive1", "shell_module"), "/zephyr_sim/3.6.0/1.15.0/hifive1/shell_module/shell_module.repl"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
