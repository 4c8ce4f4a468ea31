// Package web serves the static marketing site and uploaded images.
package web

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// Handler serves the site from siteDir and uploaded images from
// uploadsDir under /uploads/. Unknown paths fall back to index.html so
// client-side routes deep-link correctly.
func Handler(siteDir, uploadsDir string) http.Handler {
	fsys := os.DirFS(siteDir)
	static := http.FileServer(http.FS(fsys))
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))

	serveIndex := func(w http.ResponseWriter, r *http.Request) {
		body, err := fs.ReadFile(fsys, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/uploads/") {
			uploads.ServeHTTP(w, r)
			return
		}

		cleanPath := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if cleanPath == "." || cleanPath == "" {
			serveIndex(w, r)
			return
		}

		if _, err := fs.Stat(fsys, cleanPath); err == nil {
			static.ServeHTTP(w, r)
			return
		}

		// Deep-link fallback for client-side routing.
		serveIndex(w, r)
	})
}
