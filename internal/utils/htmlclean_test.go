package utils

import "testing"

func TestCleanScrapedHTMLQuotedArtifact(t *testing.T) {
	got := CleanScrapedHTML(`<div data-x="v" == $3>`)
	if got != `<div data-x="v">` {
		t.Fatalf("got %q", got)
	}
}

func TestCleanScrapedHTMLBareArtifact(t *testing.T) {
	got := CleanScrapedHTML("<span>text</span> == $12")
	if got != "<span>text</span>" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanScrapedHTMLNoArtifact(t *testing.T) {
	in := `<p class="a == b">x == y</p>`
	if got := CleanScrapedHTML(in); got != in {
		t.Fatalf("clean changed artifact-free html: %q", got)
	}
}
