package reply

import "testing"

func TestNormalizeLinksOrder(t *testing.T) {
	search := []Citation{{URI: "a"}, {URI: "b", Title: "B Source"}}
	fetched := []string{"c"}
	links := NormalizeLinks(search, fetched)
	if len(links) != 3 {
		t.Fatalf("links = %d, want 3", len(links))
	}
	if links[0].URI != "a" || links[1].URI != "b" || links[2].URI != "c" {
		t.Fatalf("order = [%s %s %s], want [a b c]", links[0].URI, links[1].URI, links[2].URI)
	}
	if links[0].Title != DefaultSearchTitle {
		t.Fatalf("missing title should default, got %q", links[0].Title)
	}
	if links[1].Title != "B Source" {
		t.Fatalf("explicit title overwritten: %q", links[1].Title)
	}
	if links[2].Title != URLFetchTitle {
		t.Fatalf("fetch title = %q", links[2].Title)
	}
}

func TestNormalizeLinksNoDedup(t *testing.T) {
	links := NormalizeLinks([]Citation{{URI: "x"}, {URI: "x"}}, []string{"x"})
	if len(links) != 3 {
		t.Fatalf("duplicates must be preserved, got %d links", len(links))
	}
}

func TestNormalizeLinksSkipsBlankURIs(t *testing.T) {
	links := NormalizeLinks([]Citation{{URI: "  "}, {URI: "ok"}}, []string{""})
	if len(links) != 1 || links[0].URI != "ok" {
		t.Fatalf("links = %+v", links)
	}
}

func TestNormalizeLinksEmpty(t *testing.T) {
	if links := NormalizeLinks(nil, nil); len(links) != 0 {
		t.Fatalf("want empty list, got %+v", links)
	}
}
