// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"net/http"

	"devserve/server/static"
)

const allowedMethods = "GET, HEAD"

func (s *Server) initRoutes() {
	r := s.router
	r.Use(corsMiddleware)
	r.Use(accessLogger(s.accessLog))
	r.Use(recoverMiddleware(s.log))

	files := static.FileHandler(s.cfg.StaticDir)
	r.Get("/*", files.ServeHTTP)
	r.Head("/*", files.ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowedMethods)
		http.Error(w, "Unsupported method ("+r.Method+")", http.StatusMethodNotAllowed)
	})
}
