// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// gzipWriterPool reuses gzip writers across requests.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// Compression gzips responses for clients that accept it. WebSocket
// upgrade requests pass through untouched, and the writer skips payloads
// that are already compressed. WAV audio is raw PCM and compresses well,
// so only image payloads are exempted by content type.
func Compression(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") ||
			strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			next(w, r)
			return
		}

		w.Header().Add("Vary", "Accept-Encoding")

		gz := gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(gz)
		gz.Reset(w)

		gw := &gzipResponseWriter{ResponseWriter: w, gz: gz}
		next(gw, r)

		if gw.wroteHeader && !gw.skip {
			gz.Close()
		}
	}
}

// gzipResponseWriter defers the compression decision until the handler
// commits its headers, so content types set by the handler can opt the
// response out.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	wroteHeader bool
	skip        bool
}

func (w *gzipResponseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if skipCompression(w.Header()) {
		w.skip = true
	} else {
		w.Header().Set("Content-Encoding", "gzip")
		// Length refers to the uncompressed body and would be wrong.
		w.Header().Del("Content-Length")
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.skip {
		return w.ResponseWriter.Write(b)
	}
	return w.gz.Write(b)
}

// skipCompression reports whether a response should bypass gzip: it is
// already encoded, or carries a content type that will not shrink.
func skipCompression(h http.Header) bool {
	if h.Get("Content-Encoding") != "" {
		return true
	}
	ct := h.Get("Content-Type")
	return strings.HasPrefix(ct, "image/")
}
