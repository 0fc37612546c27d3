// CLASSIFICATION: COMMUNITY
// Filename: watch.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch logs changes below the serving root while the server runs.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultInterval = 100 * time.Millisecond
	DefaultBurst    = 20
)

// Watcher reports file changes below a root directory.
type Watcher struct {
	root       string
	fsw        *fsnotify.Watcher
	log        logrus.FieldLogger
	limiter    *rate.Limiter
	suppressed int
}

// New watches root and every directory below it.
func New(root string, log logrus.FieldLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		root:    root,
		fsw:     fsw,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(DefaultInterval), DefaultBurst),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetLimit changes how many change entries may be logged per interval.
func (w *Watcher) SetLimit(every time.Duration, burst int) {
	w.limiter = rate.NewLimiter(rate.Every(every), burst)
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run logs events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		// Directories created after startup need their own watch.
		if err := w.addTree(ev.Name); err != nil {
			w.log.WithError(err).Debug("watch new path")
		}
	}
	if !w.limiter.Allow() {
		w.suppressed++
		return
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	fields := logrus.Fields{"path": filepath.ToSlash(rel), "op": ev.Op.String()}
	if w.suppressed > 0 {
		fields["suppressed"] = w.suppressed
		w.suppressed = 0
	}
	w.log.WithFields(fields).Info("changed")
}
