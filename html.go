/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/julienschmidt/httprouter"

	"github.com/Seednode/timeline/games/timeline/render"
)

//go:generate sh -c "GOOS=js GOARCH=wasm go build -trimpath -ldflags=-s -o assets/timeline/timeline.wasm ./cmd/timeline-wasm"
//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" assets/timeline/wasm_exec.js"

//go:embed assets/*
var assets embed.FS

// gameAssets are produced by go generate and needed to run the game client.
var gameAssets = []string{
	"assets/timeline/timeline.wasm",
	"assets/timeline/wasm_exec.js",
}

func missingFiles(fsys fs.FS, names ...string) []string {
	var missing []string

	for _, name := range names {
		if _, err := fs.Stat(fsys, name); err != nil {
			missing = append(missing, name)
		}
	}

	return missing
}

func cspHome(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:")
}

func cspGame(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'wasm-unsafe-eval'")
}

func site(cfg *Config) render.Site {
	return render.Site{Prefix: cfg.prefix}
}

// writePage renders page and writes it with a 200 status. Headers other than
// the content type and length must already be set.
func writePage(cfg *Config, w http.ResponseWriter, r *http.Request, errs chan<- error, name string, page templ.Component) {
	startTime := time.Now()

	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		errs <- fmt.Errorf("render %s: %w", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	written, err := w.Write(buf.Bytes())
	if err != nil {
		errs <- fmt.Errorf("write %s: %w", name, err)

		return
	}

	logf(cfg, "SERVE: %s (%s) to %s in %s",
		name,
		humanReadableSize(int64(written)),
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}

func serveHomePage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)
		cspHome(w)

		writePage(cfg, w, r, errs, "Home page", render.Landing(site(cfg)))
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- fmt.Errorf("write health check: %w", err)

			return
		}
	}
}

func assetContentType(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "text/javascript; charset=utf-8"
	case ".wasm":
		return "application/wasm"
	case ".woff2":
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

func serveAssets(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		fname := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, cfg.prefix), "/")

		data, err := assets.ReadFile(fname)
		if err != nil {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Content-Type", assetContentType(fname))
		securityHeaders(cfg, w)

		_, err = w.Write(data)
		if err != nil {
			errs <- fmt.Errorf("write asset %s: %w", fname, err)

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: Amazonbot
Disallow: /

User-agent: Applebot-Extended
Disallow: /

User-agent: Bytespider
Disallow: /

User-agent: CCBot
Disallow: /

User-agent: Google-Extended
Disallow: /

User-agent: GPTBot
Disallow: /

User-agent: *
Disallow: ` + cfg.prefix + `/assets/
Allow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- fmt.Errorf("write robots.txt: %w", err)

			return
		}
	}
}
