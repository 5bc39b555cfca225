// Package archive builds Walk abstraction on top of "archive/zip" so kv
// sources packed together can be compiled in one go.
package archive

import (
	"archive/zip"
	"cmp"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is called for every archive entry accepted by MatchFunc. If an
// error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// MatchFunc selects archive entries by name.
type MatchFunc func(name string) bool

// Prefix matches entries with names starting with prefix (case sensitive).
func Prefix(prefix string) MatchFunc {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// Extensions matches entries with any of the listed extensions, comparison
// ignores case. Extensions are expected with leading dot.
func Extensions(exts ...string) MatchFunc {
	return func(name string) bool {
		ext := path.Ext(name)
		return slices.ContainsFunc(exts, func(e string) bool {
			return strings.EqualFold(e, ext)
		})
	}
}

// Walk calls walkFn for every regular file in archive accepted by match,
// entries are visited in natural order of their names so "ch2.kv" comes
// before "ch10.kv". Nil match accepts everything. Archives containing
// absolute entry names or ".." components are rejected as a whole.
func Walk(archive string, match MatchFunc, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(name)) {
			continue
		}
		files = append(files, f)
	}
	slices.SortStableFunc(files, func(a, b *zip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		default:
			return cmp.Compare(a.Name, b.Name)
		}
	})

	for _, f := range files {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
