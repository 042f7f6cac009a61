// Package gallery serves a minimal browser view of the saved images:
// an index page with thumbnails and a static file route for the images
// themselves. It reads the save directory on every request, so images
// downloaded while the server runs appear without a restart.
package gallery

import (
	"context"
	"html/template"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Logger is the minimal logging interface needed by the server.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Extensions shown on the index page. Anything else in the directory
// (logs, partial downloads) is ignored.
var galleryExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
    <title>Saved Pictures of the Day</title>
    <style>
        body { font-family: sans-serif; margin: 2em; }
        ul { list-style: none; padding: 0; }
        li { margin-bottom: 1em; border-bottom: 1px solid #eee; padding-bottom: 1em; }
        a { text-decoration: none; color: #007bff; }
        a:hover { text-decoration: underline; }
        img { max-width: 150px; max-height: 100px; vertical-align: middle; margin-right: 1em; border: 1px solid #ddd; }
    </style>
</head>
<body>
    <h1>Saved Pictures of the Day</h1>
    {{if .Images}}
        <p>{{len .Images}} image(s) found:</p>
        <ul>
            {{range .Images}}
            <li>
                <a href="/images/{{.}}" target="_blank">
                    <img src="/images/{{.}}" alt="{{.}}" loading="lazy">
                    {{.}}
                </a>
            </li>
            {{end}}
        </ul>
    {{else}}
        <p>No images in the save directory yet.</p>
    {{end}}
</body>
</html>
`))

// Server serves the gallery over HTTP.
type Server struct {
	Dir string
	Log Logger
}

// Handler builds the router. Split from Serve so tests can drive it
// through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/images/{name}", s.handleImage)
	return r
}

// Serve runs the HTTP server on host:port until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Log.Info("gallery listening on http://%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	images := s.listImages()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Images []string }{images}); err != nil {
		s.Log.Error("render index: %v", err)
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// The route captures a single path segment, but reject separators and
	// parent references outright rather than trusting the router.
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	path := filepath.Join(s.Dir, name)
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		s.Log.Warn("image not found: %s", name)
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// listImages returns the displayable files in the save directory, sorted
// by name. The date-prefixed naming scheme makes that chronological.
func (s *Server) listImages() []string {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		s.Log.Warn("cannot read save directory: %v", err)
		return nil
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if galleryExts[strings.ToLower(filepath.Ext(e.Name()))] {
			images = append(images, e.Name())
		}
	}
	sort.Strings(images)
	return images
}
