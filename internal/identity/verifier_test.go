package identity

import (
	"testing"
	"time"
)

func TestExtractBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "missing header", header: "", wantOK: false},
		{name: "no scheme", header: "abc.def.ghi", wantOK: false},
		{name: "wrong scheme", header: "Basic abc.def.ghi", wantOK: false},
		{name: "bearer no token", header: "Bearer ", wantOK: false},
		{name: "bearer only", header: "Bearer", wantOK: false},
		{name: "valid", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi", wantOK: true},
		{name: "case insensitive scheme", header: "bearer abc.def.ghi", wantToken: "abc.def.ghi", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := ExtractBearer(tt.header)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if token != tt.wantToken {
				t.Fatalf("token = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestCacheMaxAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "typical google header", header: "public, max-age=21780, must-revalidate, no-transform", want: 21780 * time.Second},
		{name: "missing header", header: "", want: time.Hour},
		{name: "no max-age", header: "public, no-cache", want: time.Hour},
		{name: "zero max-age", header: "max-age=0", want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheMaxAge(tt.header); got != tt.want {
				t.Fatalf("cacheMaxAge(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
