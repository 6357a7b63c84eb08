/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestSetupTracingDisabled ensures no provider is built without an endpoint.
func TestSetupTracingDisabled(t *testing.T) {
	shutdown, err := setupTracing(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("setupTracing returned error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}
}

// TestTracedRecordsRouteSpans ensures each route runs inside a named span.
func TestTracedRecordsRouteSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	mux := newTestRouter(t, testConfig())
	if rec := get(mux, "/game"); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "game" {
		t.Fatalf("expected span named game, got %q", spans[0].Name())
	}
}
