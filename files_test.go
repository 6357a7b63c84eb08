/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import "testing"

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 0, want: "0 B"},
		{bytes: 999, want: "999 B"},
		{bytes: 1000, want: "1.0 kB"},
		{bytes: 1536, want: "1.5 kB"},
		{bytes: 2_500_000, want: "2.5 MB"},
		{bytes: 3_000_000_000, want: "3.0 GB"},
	}

	for _, tt := range tests {
		if got := humanReadableSize(tt.bytes); got != tt.want {
			t.Fatalf("humanReadableSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
