package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPA serves the bundled client application. Existing files under the static
// dir are served directly; everything else falls back to index.html so
// client-side routing works.
func (a *App) SPA(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		a.error(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	requested := filepath.Join(a.Config.StaticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		http.ServeFile(w, r, requested)
		return
	}
	http.ServeFile(w, r, filepath.Join(a.Config.StaticDir, "index.html"))
}
