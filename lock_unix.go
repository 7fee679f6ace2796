//go:build unix

package shardtree

import (
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// lockFile takes an exclusive advisory lock on a freshly created file so
// concurrent creators can detect a write in progress. Filesystems that do not
// expose an OS descriptor, such as afero's in-memory one, have no other
// processes to guard against and are skipped.
func lockFile(f afero.File) error {
	fd, ok := f.(interface{ Fd() uintptr })
	if !ok {
		return nil
	}
	return unix.Flock(int(fd.Fd()), unix.LOCK_EX)
}
