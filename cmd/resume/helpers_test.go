package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-resume/internal/command"
	"github.com/alnah/go-resume/internal/config"
)

// sampleMarkdown is a small resume used across command tests.
const sampleMarkdown = `# Jane Doe

**Senior Platform Engineer**

jane@example.com
Berlin, Germany

## Professional Summary

Builds reliable delivery platforms.

## Core Skills

- Go
- Kubernetes

## Professional Experience

### Staff Engineer, Acme

**2020 - Present**

- Led the build platform migration.
`

// mockRunner records calls and answers them with run.
type mockRunner struct {
	mu    sync.Mutex
	calls []string
	run   func(name string, args []string) (string, string, error)
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
	if m.run == nil {
		return "", "", command.ErrCommandNotFound
	}
	return m.run(name, args)
}

func (m *mockRunner) called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

// weasyprintRunner prints a fake PDF to stdout like `weasyprint ... -`.
func weasyprintRunner() *mockRunner {
	return &mockRunner{run: func(name string, _ []string) (string, string, error) {
		if name == "weasyprint" {
			return "%PDF-1.7 mock", "", nil
		}
		return "", "", command.ErrCommandNotFound
	}}
}

// installed returns a LookPath that only finds names.
func installed(names ...string) func(string) (string, error) {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
}

// testEnv returns an Environment writing to buffers with nothing installed.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:      func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout:   &stdout,
		Stderr:   &stderr,
		Config:   config.DefaultConfig(),
		Runner:   &mockRunner{},
		LookPath: installed(),
	}, &stdout, &stderr
}

// writeResume writes sampleMarkdown to dir/name and returns its path.
func writeResume(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sampleMarkdown), 0o600); err != nil {
		t.Fatalf("writing resume: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
