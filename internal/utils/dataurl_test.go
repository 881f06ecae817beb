package utils

import "testing"

func TestBytesToDataURL(t *testing.T) {
	got := BytesToDataURL([]byte("png-bytes"), "image/png")
	want := "data:image/png;base64,cG5nLWJ5dGVz"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestBytesToDataURLEmptyPayload(t *testing.T) {
	if got := BytesToDataURL(nil, "image/png"); got != "data:image/png;base64," {
		t.Fatalf("got %q", got)
	}
}
