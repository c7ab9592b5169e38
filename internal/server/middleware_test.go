package server

import (
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123", wantOK: true},
		{name: "extra parts", header: "Bearer abc123 trailing", want: "abc123", wantOK: true},
		{name: "missing", header: "", wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
		{name: "no space", header: "Bearerabc", wantOK: false},
		{name: "other scheme", header: "Token abc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/playlist", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, ok := bearerToken(req)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("bearerToken() = %q, %t; want %q, %t", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0B"},
		{512, "< 1KB"},
		{2048, "2KB"},
		{5 * 1024 * 1024, "5MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.bytes); got != tt.want {
			t.Errorf("formatBytes(%d) = %s, want %s", tt.bytes, got, tt.want)
		}
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("Expected first request from client to pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Expected second request from same client to be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("Expected other client to have its own bucket")
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name         string
		remoteAddr   string
		forwardedFor []string
		want         string
	}{
		{name: "direct client", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "unparseable address", remoteAddr: "not-an-address", want: "not-an-address"},
		{name: "forwarded header ignored from remote peer", remoteAddr: "192.0.2.1:1234", forwardedFor: []string{"203.0.113.9"}, want: "192.0.2.1"},
		{name: "loopback without header", remoteAddr: "127.0.0.1:5000", want: "127.0.0.1"},
		{name: "loopback proxy", remoteAddr: "127.0.0.1:5000", forwardedFor: []string{"203.0.113.9"}, want: "203.0.113.9"},
		{name: "ipv6 loopback proxy", remoteAddr: "[::1]:5000", forwardedFor: []string{"203.0.113.9"}, want: "203.0.113.9"},
		{name: "forged hops skipped", remoteAddr: "127.0.0.1:5000", forwardedFor: []string{"10.0.0.1, 203.0.113.9"}, want: "203.0.113.9"},
		{name: "repeated headers", remoteAddr: "127.0.0.1:5000", forwardedFor: []string{"10.0.0.1", "203.0.113.9"}, want: "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for _, v := range tt.forwardedFor {
				req.Header.Add("X-Forwarded-For", v)
			}

			if got := clientKey(req); got != tt.want {
				t.Errorf("clientKey() = %s, want %s", got, tt.want)
			}
		})
	}
}
