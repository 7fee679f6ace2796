//go:build !unix

package shardtree

import "github.com/spf13/afero"

// lockFile is a no-op on platforms without flock semantics; the atomic
// create-if-absent in CreateFile still guarantees a single winner.
func lockFile(afero.File) error {
	return nil
}
