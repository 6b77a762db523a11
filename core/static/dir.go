package static

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type config struct {
	stripPrefix string
	notFound    http.Handler
}

// Option configures file serving behavior.
type Option func(*config)

// WithStripPrefix removes the given prefix from the URL path before serving files.
func WithStripPrefix(prefix string) Option {
	return func(c *config) {
		c.stripPrefix = prefix
	}
}

// WithNotFound sets the handler used when no file matches the request.
// Defaults to http.NotFound.
func WithNotFound(h http.Handler) Option {
	return func(c *config) {
		c.notFound = h
	}
}

// Dir returns a handler serving files from root. The directory is validated once,
// at construction time.
func Dir(root string, opts ...Option) (http.Handler, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("static: error accessing %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}

	return newHandler(http.Dir(root), opts...), nil
}

// FS returns a handler serving files from fsys.
func FS(fsys fs.FS, opts ...Option) http.Handler {
	return newHandler(http.FS(fsys), opts...)
}

func newHandler(fsys http.FileSystem, opts ...Option) http.Handler {
	cfg := &config{notFound: http.NotFoundHandler()}
	for _, opt := range opts {
		opt(cfg)
	}

	nfs := neuteredFileSystem{fs: fsys}
	fileServer := http.FileServer(nfs)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if cfg.stripPrefix != "" {
			trimmed := strings.TrimPrefix(urlPath, cfg.stripPrefix)
			if trimmed == urlPath {
				cfg.notFound.ServeHTTP(w, r)
				return
			}
			urlPath = trimmed
		}
		if !strings.HasPrefix(urlPath, "/") {
			urlPath = "/" + urlPath
		}

		// Probe first so a missing file reaches the configurable 404 handler
		// instead of the file server's plain-text one.
		f, err := nfs.Open(path.Clean(urlPath))
		if err != nil {
			cfg.notFound.ServeHTTP(w, r)
			return
		}
		_ = f.Close()

		r2 := r
		if urlPath != r.URL.Path {
			r2 = r.Clone(r.Context())
			r2.URL.Path = urlPath
			r2.URL.RawPath = ""
		}
		fileServer.ServeHTTP(w, r2)
	})
}

// neuteredFileSystem wraps http.FileSystem to disable directory listing.
// Directories are only accessible if they contain an index.html file.
type neuteredFileSystem struct {
	fs http.FileSystem
}

// Open implements http.FileSystem.
func (nfs neuteredFileSystem) Open(name string) (http.File, error) {
	f, err := nfs.fs.Open(name)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if s.IsDir() {
		index := strings.TrimSuffix(name, "/") + "/index.html"
		idx, err := nfs.fs.Open(index)
		if err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
		_ = idx.Close()
	}

	return f, nil
}
