package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/wikiracer/internal/model"
)

// pageFileExt is the extension of page files in a corpus directory.
const pageFileExt = ".html"

// DirSource serves pages from a directory snapshot where the page
// "/wiki/Calvin_Li" is stored as "Calvin_Li.html".
type DirSource struct {
	denyList

	dir string
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{
		denyList: newDenyList(),
		dir:      dir,
	}
}

// Dir returns the corpus directory.
func (d *DirSource) Dir() string {
	return d.dir
}

// Fetch reads the page file. Missing files and identifiers that cannot name a
// file inside the directory yield Placeholder.
func (d *DirSource) Fetch(ctx context.Context, id model.PageID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, ok := FileName(id)
	if !ok {
		return Placeholder, nil
	}

	data, err := os.ReadFile(filepath.Join(d.dir, name)) //nolint:gosec // name is checked by FileName
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Placeholder, nil
		}
		return "", fmt.Errorf("failed to read page %s: %w", id, err)
	}

	return string(data), nil
}

// FileName returns the file name that stores id inside a corpus directory.
// It reports false for identifiers that are not plain tokens, such as ones
// containing path separators.
func FileName(id model.PageID) (string, bool) {
	token := id.Token()
	if token == "" || string(id) == token {
		return "", false
	}
	if strings.ContainsAny(token, `/\`) || strings.HasPrefix(token, ".") {
		return "", false
	}
	return token + pageFileExt, true
}

// PageIDFromFile is the inverse of FileName.
func PageIDFromFile(name string) (model.PageID, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, pageFileExt) {
		return "", false
	}
	token := strings.TrimSuffix(base, pageFileExt)
	if token == "" {
		return "", false
	}
	return model.PageID(model.WikiPrefix + token), true
}

// WalkDir calls fn for every page file in dir, in lexical order.
func WalkDir(ctx context.Context, dir string, fn func(id model.PageID, content string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read corpus directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			continue
		}
		id, ok := PageIDFromFile(entry.Name())
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name())) //nolint:gosec // entry comes from ReadDir
		if err != nil {
			return fmt.Errorf("failed to read page file %s: %w", entry.Name(), err)
		}
		if err := fn(id, string(data)); err != nil {
			return err
		}
	}

	return nil
}
