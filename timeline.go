/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/timeline/games/timeline/render"
)

const qrSize = 320

func serveGamePage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)
		cspGame(w)

		writePage(cfg, w, r, errs, "Game page", render.GameShell(site(cfg)))
	}
}

// gameURL is the absolute URL of the game page as seen by the client,
// respecting TLS and X-Forwarded-Proto.
func gameURL(cfg *Config, r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix + path
}

// serveQR returns a PNG QR code pointing at the game page.
func serveQR(cfg *Config, path string, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		url := gameURL(cfg, r, path)

		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			errs <- fmt.Errorf("generate qr code for %s: %w", url, err)
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- fmt.Errorf("write qr code: %w", err)

			return
		}

		logf(cfg, "SERVE: QR code for %s (%s) to %s in %s",
			url,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerTimelineGame sets up routes so that:
//   - $path  → game document, which loads the WebAssembly client
//   - /qr    → PNG QR code for the game URL
func registerTimelineGame(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) {
	path = "/" + strings.Trim(path, "/")

	mux.GET(cfg.prefix+path, traced("game", serveGamePage(cfg, errs)))

	mux.GET(cfg.prefix+"/qr", traced("qr", serveQR(cfg, path, errs)))
}
