package reply

import "strings"

// Titles applied during link normalization. Search citations keep the
// title the model gave them and fall back to DefaultSearchTitle;
// URL-fetch results always carry URLFetchTitle.
const (
	DefaultSearchTitle = "External Source"
	URLFetchTitle      = "Retrieved Page Context"
)

// Citation is one raw search-grounding chunk as the call returned it.
type Citation struct {
	URI   string
	Title string
}

// NormalizeLinks builds the reply's link list: search citations first,
// then URL-fetch results, both in model order. Entries without a URI
// are dropped; nothing else is deduplicated or filtered.
func NormalizeLinks(search []Citation, fetched []string) []GroundingLink {
	links := make([]GroundingLink, 0, len(search)+len(fetched))
	for _, c := range search {
		if strings.TrimSpace(c.URI) == "" {
			continue
		}
		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = DefaultSearchTitle
		}
		links = append(links, GroundingLink{URI: c.URI, Title: title})
	}
	for _, u := range fetched {
		if strings.TrimSpace(u) == "" {
			continue
		}
		links = append(links, GroundingLink{URI: u, Title: URLFetchTitle})
	}
	return links
}
