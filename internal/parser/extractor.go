package parser

import (
	"regexp"
	"strings"

	"github.com/nao1215/wikiracer/internal/model"
)

// linkRegex matches an anchor whose href points at a page in the /wiki/ namespace.
// The captured token stops at a quote, fragment, or query string.
var linkRegex = regexp.MustCompile(`<a\s+href="/wiki/([^"#?]+)"`)

// Extractor turns page content into an ordered, deduplicated list of links.
// It is stateless apart from its disallowed set and safe for concurrent use.
type Extractor struct {
	// disallowed holds characters that disqualify a link token,
	// e.g. ':' for namespace pages such as "File:" or "Help:".
	disallowed string
}

// NewExtractor creates an Extractor that rejects any token containing one of
// the characters in disallowed.
func NewExtractor(disallowed string) *Extractor {
	return &Extractor{disallowed: disallowed}
}

// ExtractLinks returns the links found in content in first-occurrence order.
// Content without any matching anchor yields an empty, non-nil slice.
func (e *Extractor) ExtractLinks(content string) []model.PageID {
	matches := linkRegex.FindAllStringSubmatch(content, -1)

	seen := make(map[string]bool, len(matches))
	links := make([]model.PageID, 0, len(matches))
	for _, m := range matches {
		token := m[1]
		if e.isDisallowed(token) || seen[token] {
			continue
		}
		seen[token] = true
		links = append(links, model.PageID(model.WikiPrefix+token))
	}

	return links
}

// isDisallowed reports whether token contains any disallowed character.
func (e *Extractor) isDisallowed(token string) bool {
	return e.disallowed != "" && strings.ContainsAny(token, e.disallowed)
}
