package shardtree

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// InferPrefixPartLengths determines the prefix part lengths that must have
// produced an existing tree by descending into the first directory entry at
// each level until a regular file is reached, recording each directory-name
// length along the way.
//
// ok is false, with a nil error, when the tree holds no files anywhere along
// that first-descent path. A tree with files directly in the base returns an
// empty slice with ok true, which is a different answer. The result is
// guaranteed correct only for a well-formed tree with uniform widths per
// level; uniformity is not checked.
//
// It fails with an ExpectedDirectoryError when base is not a directory.
func InferPrefixPartLengths(fsys afero.Fs, base string) (lengths []int, ok bool, err error) {
	info, err := fsys.Stat(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, &ExpectedDirectoryError{Path: base}
		}
		return nil, false, err
	}
	if !info.IsDir() {
		return nil, false, &ExpectedDirectoryError{Path: base}
	}

	lengths = []int{}
	current := base

	for {
		children, err := afero.ReadDir(fsys, current)
		if err != nil {
			return nil, false, err
		}
		if len(children) == 0 {
			// Directories all the way down with nothing in the last one:
			// the tree has no files.
			return nil, false, nil
		}

		first := children[0]
		path := filepath.Join(current, first.Name())

		info, err := fsys.Stat(path)
		if err != nil {
			return nil, false, err
		}
		if info.Mode().IsRegular() {
			return lengths, true, nil
		}

		lengths = append(lengths, len(first.Name()))
		current = path
	}
}
