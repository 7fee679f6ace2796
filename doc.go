/*
	Package shardtree maps logical names to filesystem paths through a sharded
	directory tree.

A name is encoded to its on-disk string form by a pluggable scheme, split into
a fixed sequence of directory-name prefixes, and stored as a leaf file named
after the full encoded string. This is the layout used by content-addressable
stores (objects keyed by hash) to avoid millions of files in one directory.

# Layout

Given prefix part lengths [2, 2] and the hex-encoded name "d41d8cd9...":

	base/
	└── d4/
	    └── 1d/
	        └── d41d8cd98f00b204e9800998ecf8427e

Each directory level consumes its configured number of characters from the
front of the encoded name; the leaf keeps the full encoded name, plus a fixed
extension when one is configured.

# Building a tree

	tree, err := shardtree.WithScheme(
	    shardtree.NewBuilder(".objects"),
	    shardtree.NewHexScheme(16, shardtree.CaseLower),
	).WithPrefixPartLengths(2, 2).Build()

A scheme with a fixed encoded length (hex, base32) installs a matching length
constraint automatically. Build fails if the prefix part lengths sum to more
than the constraint allows.

# File access

OpenFile and CreateFile resolve the name to its path and report absence as a
boolean, never as an error:

	file, found, err := tree.OpenFile(digest)
	file, created, err := tree.CreateFile(digest)

CreateFile creates missing parent directories, creates the file only if it
does not already exist, and takes an exclusive advisory lock on it before
returning, so two processes racing on the same name observe exactly one
successful creation.

# Iteration

Entries walks the tree depth first and yields each decoded name with the path
it was found at:

	for entry, err := range tree.Entries() {
	    if err != nil {
	        // one malformed entry; iteration continues
	        continue
	    }
	    fmt.Println(entry.Name, entry.Path)
	}

Validation failures (wrong directory-name width, unexpected extension, wrong
file stem length, undecodable stem) are yielded per entry and do not abort the
traversal.

# Filesystems

All filesystem access goes through spf13/afero. The default is the OS
filesystem; tests typically use an in-memory one:

	tree, err := shardtree.NewBuilder("/store").
	    WithFs(afero.NewMemMapFs()).
	    Build()

# Errors

"Not found" is never an error for single-name operations. Everything else
surfaces as a typed error: InvalidNameError (name too short for the configured
shard widths), ExpectedFileError / ExpectedDirectoryError (entry-kind
mismatch), InconsistentPrefixPartsError (builder misconfiguration), and the
scheme decode errors InvalidByteError, InvalidLengthError and ErrNotUTF8.
Underlying I/O errors propagate unwrapped.
*/
package shardtree
