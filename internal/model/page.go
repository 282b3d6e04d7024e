package model

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WikiPrefix is the path prefix shared by every page identifier.
const WikiPrefix = "/wiki/"

// PageID identifies a page in the link graph, e.g. "/wiki/Calvin_Li".
// Two PageIDs are the same page only when their strings are equal.
type PageID string

// NormalizePageID turns user input into a PageID.
//
// Accepted forms:
//   - "/wiki/Calvin_Li" (returned unchanged)
//   - "https://en.wikipedia.org/wiki/Calvin_Li" (path is kept)
//   - "Calvin Li" or "Calvin_Li" (prefixed, spaces become underscores)
func NormalizePageID(s string) PageID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, WikiPrefix) {
		return PageID(s)
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		if u, err := url.Parse(s); err == nil && strings.HasPrefix(u.EscapedPath(), WikiPrefix) {
			return PageID(u.EscapedPath())
		}
	}
	return PageID(WikiPrefix + strings.ReplaceAll(strings.TrimPrefix(s, "/"), " ", "_"))
}

// String implements fmt.Stringer.
func (p PageID) String() string {
	return string(p)
}

// Token returns the identifier without the "/wiki/" prefix.
func (p PageID) Token() string {
	return strings.TrimPrefix(string(p), WikiPrefix)
}

// Words returns the set of underscore-separated words of the full identifier.
// The prefix is not stripped: "/wiki/Calvin_Li" yields {"/wiki/Calvin", "Li"}.
func (p PageID) Words() map[string]struct{} {
	parts := strings.Split(string(p), "_")
	words := make(map[string]struct{}, len(parts))
	for _, w := range parts {
		words[w] = struct{}{}
	}
	return words
}

// titleCaser upper-cases the first letter of each word and leaves the rest alone,
// so "iPod_touch" stays recognizable.
var titleCaser = cases.Title(language.English, cases.NoLower)

// Title returns a human readable page title ("/wiki/Scott%27s_film" -> "Scott's Film").
func (p PageID) Title() string {
	token := p.Token()
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}
	return titleCaser.String(strings.ReplaceAll(token, "_", " "))
}
