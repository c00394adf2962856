/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	// Build the binary before running tests
	wd := mustGetwd()
	cmd := exec.Command("go", "build", "-o", "hq_test", ".")
	cmd.Dir = wd
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("failed to build test binary: " + err.Error() + "\n" + string(out))
	}
	code := m.Run()
	_ = os.Remove(filepath.Join(wd, "hq_test"))
	os.Exit(code)
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	binary := filepath.Join(mustGetwd(), "hq_test")
	cmd := exec.Command(binary, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("Failed to run CLI: %v", err)
		}
	}

	return stdout, stderr, exitCode
}

func TestVersion(t *testing.T) {
	stdout, stderr, code := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "hq ") {
		t.Errorf("Expected version output to start with %q, got %q", "hq ", stdout)
	}
}

func TestTraceResolvesImports(t *testing.T) {
	root := filepath.Join("testdata", "app")
	file := filepath.Join(root, "src", "app.js")

	stdout, stderr, code := runCLI(t, "trace", file, "--root", root, "--format", "json")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}

	var traced []struct {
		Specifier string `json:"specifier"`
		Dynamic   bool   `json:"dynamic"`
		Resolved  string `json:"resolved"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal([]byte(stdout), &traced); err != nil {
		t.Fatalf("Failed to parse trace output: %v\nstdout: %s", err, stdout)
	}
	if len(traced) != 3 {
		t.Fatalf("Expected 3 traced imports, got %d: %+v", len(traced), traced)
	}

	byName := make(map[string]string)
	for _, entry := range traced {
		if entry.Error != "" {
			t.Errorf("Specifier %q failed to resolve: %s", entry.Specifier, entry.Error)
		}
		byName[entry.Specifier] = entry.Resolved
	}

	wantSuffix := filepath.Join("node_modules", "greeter", "index.js")
	if !strings.HasSuffix(byName["greeter"], wantSuffix) {
		t.Errorf("Expected greeter to resolve to ...%s, got %q", wantSuffix, byName["greeter"])
	}
	if !strings.HasSuffix(byName["./helper.js"], filepath.Join("src", "helper.js")) {
		t.Errorf("Expected relative import to resolve next to the file, got %q", byName["./helper.js"])
	}
	if !strings.HasSuffix(byName["greeter/extra.js"], filepath.Join("greeter", "extra.js")) {
		t.Errorf("Expected dynamic import to resolve into the package, got %q", byName["greeter/extra.js"])
	}
}

func TestTraceMissingFile(t *testing.T) {
	_, stderr, code := runCLI(t, "trace", filepath.Join("testdata", "app", "no-such-file.js"))
	if code == 0 {
		t.Fatal("Expected non-zero exit code for missing file")
	}
	if !strings.Contains(stderr, "no-such-file.js") {
		t.Errorf("Expected stderr to name the missing file, got %q", stderr)
	}
}
