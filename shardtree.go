package shardtree

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Tree maps names to paths inside a sharded directory tree. It is immutable
// once built; CreateFile mutates the filesystem, never the Tree.
type Tree[N any] struct {
	base                string
	fs                  afero.Fs
	lengthConstraint    *LengthConstraint
	extensionConstraint *ExtensionConstraint
	prefixPartLengths   []int
	scheme              Scheme[N]
}

// Base returns the tree's base directory.
func (t *Tree[N]) Base() string {
	return t.base
}

// PrefixPartLengths returns a copy of the configured directory-level widths.
func (t *Tree[N]) PrefixPartLengths() []int {
	return slices.Clone(t.prefixPartLengths)
}

// namePath resolves a name to its path, ignoring any extension constraint.
func (t *Tree[N]) namePath(name N) (string, error) {
	encoded := t.scheme.EncodeName(name)

	total := 0
	for _, length := range t.prefixPartLengths {
		total += length
	}
	// Floor of 1 so an empty prefix list still rejects the empty name.
	if total < 1 {
		total = 1
	}
	if len(encoded) < total {
		return "", &InvalidNameError{Encoded: encoded}
	}

	path := t.base
	remaining := encoded
	for _, length := range t.prefixPartLengths {
		path = filepath.Join(path, remaining[:length])
		remaining = remaining[length:]
	}

	return filepath.Join(path, encoded), nil
}

// Path returns the path through the tree for the given name, including any
// fixed extension. It performs no filesystem I/O and fails only when the
// encoded name is too short for the configured prefix part lengths.
func (t *Tree[N]) Path(name N) (string, error) {
	path, err := t.namePath(name)
	if err != nil {
		return "", err
	}

	if t.extensionConstraint != nil && t.extensionConstraint.kind == extensionFixed {
		path += "." + t.extensionConstraint.ext
	}

	return path, nil
}

// OpenFile opens the file for the given name for reading. A missing file is
// not an error: found is false and err is nil. A path that exists but is not
// a regular file fails with an ExpectedFileError.
func (t *Tree[N]) OpenFile(name N) (file afero.File, found bool, err error) {
	path, err := t.Path(name)
	if err != nil {
		return nil, false, err
	}

	f, err := t.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	info, err := t.fs.Stat(path)
	if err != nil {
		f.Close()
		return nil, false, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, false, &ExpectedFileError{Path: path}
	}

	return f, true, nil
}

// CreateFile creates the file for the given name, creating parent directories
// as needed. The create is atomic: it fails rather than truncates when the
// file already exists, in which case created is false and err is nil,
// symmetric with OpenFile's not-found result. On success the returned file
// holds an exclusive advisory lock, released when it is closed.
func (t *Tree[N]) CreateFile(name N) (file afero.File, created bool, err error) {
	path, err := t.Path(name)
	if err != nil {
		return nil, false, err
	}

	if err := t.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, err
	}

	f, err := t.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if err := lockFile(f); err != nil {
		f.Close()
		return nil, false, err
	}

	return f, true, nil
}
