package utils

import "testing"

func TestNormalizeURLDefaultsToHTTPS(t *testing.T) {
	got, err := NormalizeURL("example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeURLKeepsExplicitScheme(t *testing.T) {
	for _, in := range []string{"http://x.com", "https://x.com/path?q=1"} {
		got, err := NormalizeURL(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if got != in {
			t.Fatalf("expected passthrough, got %q for %q", got, in)
		}
	}
}

func TestNormalizeURLHostPort(t *testing.T) {
	got, err := NormalizeURL("example.com:8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com:8080" {
		t.Fatalf("got %q", got)
	}
	// localhost:port 同样视为裸地址
	got, err = NormalizeURL("localhost:3000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://localhost:3000" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeURLRejectsUnsupportedProtocol(t *testing.T) {
	for _, in := range []string{"ftp://x.com", "file:///etc/passwd"} {
		if _, err := NormalizeURL(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestNormalizeURLTrimsWhitespace(t *testing.T) {
	got, err := NormalizeURL("  example.com \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com" {
		t.Fatalf("got %q", got)
	}
}
