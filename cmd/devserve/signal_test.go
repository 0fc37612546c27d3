// CLASSIFICATION: COMMUNITY
// Filename: signal_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

//go:build unix

package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"devserve/internal/tooling"
)

type syncBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

func TestInterruptStopsServer(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hi</h1>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := newSignalContext(context.Background())
	defer cancel()

	out := &syncBuffer{}
	cmd := tooling.NewRootCommand(out, io.Discard)
	cmd.SetArgs([]string{"--port", "0", "--dir", root})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.HasPrefix(out.String(), "Serving at http://") {
		if time.Now().After(deadline) {
			t.Fatalf("server not announced: %q", out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
	url := strings.TrimSpace(strings.TrimPrefix(out.String(), "Serving at "))
	resp, err := http.Get(url + "/index.html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("kill: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop on SIGINT")
	}
	if _, err := http.Get(url + "/index.html"); err == nil {
		t.Fatalf("server still accepting after SIGINT")
	}
}
