package site

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// MenuQuery is the query parameter that selects the initial menu state.
	MenuQuery = "menu"

	// MenuExpanded renders the page with the menu already open.
	MenuExpanded = "expanded"

	// MenuCollapsed renders the page with the menu closed, as on first load.
	MenuCollapsed = "collapsed"

	indexPage = "index.html"
)

// Handler serves the static site in dir. HTML pages matching the renderer's
// patterns get the header injected using the request path as location, with
// the hamburger linking to the page in the other menu state; every other
// file is served as is.
func Handler(dir string, r *Renderer) http.Handler {
	files := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			files.ServeHTTP(w, req)
			return
		}

		location := req.URL.Path
		if !strings.HasPrefix(location, "/") {
			location = "/" + location
		}

		rel := strings.TrimPrefix(path.Clean(location), "/")
		if strings.HasSuffix(location, "/") {
			rel = path.Join(rel, indexPage)
		}

		if rel == "" || !r.Matches(rel) {
			files.ServeHTTP(w, req)
			return
		}

		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				files.ServeHTTP(w, req)
				return
			}
			slog.Error("failed to open page", "location", location, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		if st, err := f.Stat(); err != nil || st.IsDir() {
			files.ServeHTTP(w, req)
			return
		}

		var clicks int
		if req.URL.Query().Get(MenuQuery) == MenuExpanded {
			clicks = 1
		}

		var buf bytes.Buffer
		if err := r.RenderPage(req.Context(), f, &buf, location, WithMode(ModeServe), WithClicks(clicks), WithToggle(ToggleLink)); err != nil {
			slog.Error("failed to render page", "location", location, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if req.Method == http.MethodHead {
			return
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			slog.Error("failed to write page", "location", location, "error", err)
		}
	})
}
