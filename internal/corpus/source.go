package corpus

import (
	"context"

	"github.com/nao1215/wikiracer/internal/model"
)

// DefaultDisallowed lists the characters that disqualify a link.
// ':' marks namespace pages (File:, Help:), '/' marks subpages, and
// '#' and '?' mark fragments and queries.
const DefaultDisallowed = ":#/?"

// Placeholder is returned for pages the source does not know.
// It is well-formed and contains no links.
const Placeholder = "<html><head></head><body></body></html>"

// Source is the page-fetching collaborator consumed by the searches.
type Source interface {
	// Fetch returns the content of the page. Unknown pages yield Placeholder.
	// An error means the source itself failed (transport, I/O, cancellation).
	Fetch(ctx context.Context, id model.PageID) (string, error)

	// Disallowed returns the characters that disqualify a link on this corpus.
	Disallowed() string
}

// denyList carries the disallowed character set shared by every source.
type denyList struct {
	chars string
}

func newDenyList() denyList {
	return denyList{chars: DefaultDisallowed}
}

// Disallowed returns the characters that disqualify a link.
func (d *denyList) Disallowed() string {
	return d.chars
}

// SetDisallowed replaces the disallowed character set.
func (d *denyList) SetDisallowed(chars string) {
	d.chars = chars
}

// SourceFunc adapts an ordinary function to the Source interface.
// Its disallowed set is DefaultDisallowed.
type SourceFunc func(ctx context.Context, id model.PageID) (string, error)

// Fetch calls f(ctx, id).
func (f SourceFunc) Fetch(ctx context.Context, id model.PageID) (string, error) {
	return f(ctx, id)
}

// Disallowed returns DefaultDisallowed.
func (f SourceFunc) Disallowed() string {
	return DefaultDisallowed
}
