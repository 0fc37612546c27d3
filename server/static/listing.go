// CLASSIFICATION: COMMUNITY
// Filename: listing.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
)

var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{range .Entries}}<li><a href="{{.Link}}">{{.Display}}</a></li>
{{end}}</ul>
<hr>
</body>
</html>
`))

// Entry is one line of a directory listing.
type Entry struct {
	Display string
	Link    string
}

type listing struct {
	Path    string
	Entries []Entry
}

func (h *Handler) serveListing(w http.ResponseWriter, r *http.Request, upath, dir string, f http.File) {
	infos, err := f.Readdir(-1)
	if err != nil {
		serveError(w, err)
		return
	}
	sort.Slice(infos, func(i, j int) bool {
		return strings.ToLower(infos[i].Name()) < strings.ToLower(infos[j].Name())
	})

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, h.entry(dir, info))
	}

	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, listing{Path: upath, Entries: entries}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(buf.Bytes())
	}
}

// entry marks directories with "/" and symlinks with "@". A symlink to a
// directory links with a trailing slash but displays with "@".
func (h *Handler) entry(dir string, info fs.FileInfo) Entry {
	name := info.Name()
	display, link := name, name
	if info.IsDir() || (info.Mode()&fs.ModeSymlink != 0 && h.isDir(path.Join(dir, name))) {
		display += "/"
		link += "/"
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		display = name + "@"
	}
	u := url.URL{Path: link}
	return Entry{Display: display, Link: u.String()}
}

func (h *Handler) isDir(name string) bool {
	f, err := h.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.IsDir()
}
