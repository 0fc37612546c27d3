// CLASSIFICATION: COMMUNITY
// Filename: serve.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package static serves a directory tree over HTTP.
//
// Directories without a trailing slash are redirected, index.html or
// index.htm is served when present, and any other directory gets a
// generated listing. Paths are cleaned before they reach the filesystem, which
// stops escapes through ".." segments. Symlinks are followed, including ones
// that point outside the root.
package static

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// DefaultContentType is used when the extension maps to no known type.
const DefaultContentType = "application/octet-stream"

var indexFiles = []string{"index.html", "index.htm"}

// Handler serves files below a fixed root.
type Handler struct {
	root http.FileSystem
}

// FileHandler returns an HTTP handler that serves files from dir.
func FileHandler(dir string) *Handler {
	return &Handler{root: http.Dir(dir)}
}

// NewHandler serves files from an arbitrary http.FileSystem.
func NewHandler(root http.FileSystem) *Handler {
	return &Handler{root: root}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Leading slashes collapse to one so a redirect Location can never be
	// protocol-relative ("//host/...").
	upath := "/" + strings.TrimLeft(r.URL.Path, "/")
	name := path.Clean(upath)

	f, err := h.root.Open(name)
	if err != nil {
		serveError(w, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		serveError(w, err)
		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(upath, "/") {
			redirectSlash(w, r, upath)
			return
		}
		if h.serveIndex(w, r, name) {
			return
		}
		h.serveListing(w, r, upath, name, f)
		return
	}

	if strings.HasSuffix(upath, "/") {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	serveContent(w, r, info, f)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request, dir string) bool {
	for _, index := range indexFiles {
		f, err := h.root.Open(path.Join(dir, index))
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			f.Close()
			continue
		}
		serveContent(w, r, info, f)
		f.Close()
		return true
	}
	return false
}

// ContentType reports the type served for name.
func ContentType(name string) string {
	if ctype := mime.TypeByExtension(path.Ext(name)); ctype != "" {
		return ctype
	}
	return DefaultContentType
}

func serveContent(w http.ResponseWriter, r *http.Request, info fs.FileInfo, f http.File) {
	w.Header().Set("Content-Type", ContentType(info.Name()))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func redirectSlash(w http.ResponseWriter, r *http.Request, upath string) {
	u := url.URL{Path: upath + "/", RawQuery: r.URL.RawQuery}
	w.Header().Set("Location", u.String())
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusMovedPermanently)
}

func serveError(w http.ResponseWriter, err error) {
	if errors.Is(err, fs.ErrPermission) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	http.Error(w, "File not found", http.StatusNotFound)
}
