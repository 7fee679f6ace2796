package shardtree

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Entry is a decoded name paired with the path it was found at.
type Entry[N any] struct {
	Name N
	Path string
}

// Entries walks the tree depth first and yields every leaf entry in the
// scheme's prefix-part order. Validation and decode failures are yielded as
// per-entry errors with a zero Entry; traversal continues with the siblings
// already queued, so one malformed entry never aborts the walk.
//
// The walk reads the live filesystem without locking: entries added or
// removed concurrently may or may not be observed.
func (t *Tree[N]) Entries() iter.Seq2[Entry[N], error] {
	return func(yield func(Entry[N], error) bool) {
		it := &entriesIter[N]{
			tree:  t,
			stack: [][]string{{t.base}},
			level: -1,
		}
		for {
			entry, err, ok := it.next()
			if !ok {
				return
			}
			if !yield(entry, err) {
				return
			}
		}
	}
}

// entriesIter traverses the tree with an explicit stack of pending-sibling
// frames, one per depth, instead of recursion: the depth is runtime
// configuration and must not translate into call-stack growth.
//
// level is the depth of the paths in the top frame: -1 before the first
// descent, len(prefixPartLengths) at the leaf-file level.
type entriesIter[N any] struct {
	tree  *Tree[N]
	stack [][]string
	level int
}

func (it *entriesIter[N]) atLeafLevel() bool {
	return it.level == len(it.tree.prefixPartLengths)
}

// currentPrefixPartLength returns the expected directory-name width at the
// current level, or false at the leaf level.
func (it *entriesIter[N]) currentPrefixPartLength() (int, bool) {
	if it.level < 0 || it.level >= len(it.tree.prefixPartLengths) {
		return 0, false
	}
	return it.tree.prefixPartLengths[it.level], true
}

func (it *entriesIter[N]) decrementLevel() {
	if it.level > 0 {
		it.level--
	} else {
		it.level = -1
	}
}

// next produces the next entry or per-entry error; ok is false when the
// traversal is exhausted.
func (it *entriesIter[N]) next() (entry Entry[N], err error, ok bool) {
	var zero Entry[N]

	for len(it.stack) > 0 {
		frame := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if len(frame) == 0 {
			it.decrementLevel()
			continue
		}

		next := frame[len(frame)-1]
		frame = frame[:len(frame)-1]

		if it.atLeafLevel() {
			it.stack = append(it.stack, frame)
			entry, err := it.pathToEntry(next)
			return entry, err, true
		}

		it.level++
		children, err := it.listPrefixParts(next)
		if err != nil {
			// The failed directory costs one yielded error; its siblings
			// stay queued and the level is restored for them.
			it.stack = append(it.stack, frame)
			it.decrementLevel()
			return zero, err, true
		}
		it.stack = append(it.stack, frame, children)
	}

	return zero, nil, false
}

// listPrefixParts lists a directory's children sorted descending by the
// scheme's prefix-part order (the stack pops in reverse, so the overall
// enumeration ascends) and validates their name widths for this level.
func (it *entriesIter[N]) listPrefixParts(dir string) ([]string, error) {
	info, err := it.tree.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ExpectedDirectoryError{Path: dir}
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, &ExpectedDirectoryError{Path: dir}
	}

	infos, err := afero.ReadDir(it.tree.fs, dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(infos))
	for _, child := range infos {
		paths = append(paths, filepath.Join(dir, child.Name()))
	}

	// A pair the scheme cannot order is left in directory order; the width
	// validation below still reports the malformed name deterministically.
	slices.SortStableFunc(paths, func(a, b string) int {
		cmp, err := it.tree.scheme.ComparePrefixPart(filepath.Base(a), filepath.Base(b))
		if err != nil {
			return 0
		}
		return -cmp
	})

	if want, ok := it.currentPrefixPartLength(); ok {
		for _, path := range paths {
			if len(filepath.Base(path)) != want {
				return nil, &InvalidPrefixPartError{Path: path}
			}
		}
	}

	return paths, nil
}

// pathToEntry validates a leaf path and decodes its stem into a name. The
// check order is fixed: regular file, extension, stem length, stem presence,
// decode; each later check assumes the earlier ones passed.
func (it *entriesIter[N]) pathToEntry(path string) (Entry[N], error) {
	var zero Entry[N]

	info, err := it.tree.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, &ExpectedFileError{Path: path}
		}
		return zero, err
	}
	if !info.Mode().IsRegular() {
		return zero, &ExpectedFileError{Path: path}
	}

	stem, ext, hasExt, hasStem := splitFileName(path)

	if it.tree.extensionConstraint != nil {
		if err := it.tree.extensionConstraint.check(ext, hasExt); err != nil {
			return zero, err
		}
	}

	if it.tree.lengthConstraint != nil {
		if !hasStem {
			return zero, &InvalidFileStemLengthError{Missing: true}
		}
		if !it.tree.lengthConstraint.check(len(stem)) {
			return zero, &InvalidFileStemLengthError{Length: len(stem)}
		}
	}

	if !hasStem {
		return zero, &InvalidFileStemError{Path: path}
	}

	name, err := it.tree.scheme.DecodeFileStem(stem)
	if err != nil {
		return zero, err
	}

	return Entry[N]{Name: name, Path: path}, nil
}

// splitFileName splits a path's final component into stem and extension.
// A dot in the first position does not start an extension, so ".config" is
// all stem. hasStem is false only for degenerate paths without a real final
// component.
func splitFileName(path string) (stem, ext string, hasExt, hasStem bool) {
	name := filepath.Base(path)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", "", false, false
	}

	if i := strings.LastIndexByte(name[1:], '.'); i >= 0 {
		return name[:i+1], name[i+2:], true, true
	}
	return name, "", false, true
}
