package shardtree

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNotUTF8 is returned by schemes that decode text when a file stem is
	// not valid UTF-8.
	ErrNotUTF8 = errors.New("expected UTF-8 file stem")
)

// InconsistentPrefixPartsError is returned by Builder.Build when the prefix
// part lengths sum to more than the length constraint allows.
type InconsistentPrefixPartsError struct {
	Total      int // sum of the configured prefix part lengths
	Constraint LengthConstraint
}

func (e *InconsistentPrefixPartsError) Error() string {
	return fmt.Sprintf("prefix part lengths sum to %d, exceeding length constraint %s", e.Total, e.Constraint)
}

// InvalidNameError is returned when a name encodes to a string too short for
// the configured prefix part lengths.
type InvalidNameError struct {
	Encoded string // the encoded form that could not be sharded
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: encoded form too short for prefix parts", e.Encoded)
}

// ExpectedFileError is returned when a path assumed to be a regular file
// turned out to be something else.
type ExpectedFileError struct {
	Path string
}

func (e *ExpectedFileError) Error() string {
	return fmt.Sprintf("expected file at %s", e.Path)
}

// ExpectedDirectoryError is returned when a path assumed to be a directory
// turned out to be something else, or does not exist.
type ExpectedDirectoryError struct {
	Path string
}

func (e *ExpectedDirectoryError) Error() string {
	return fmt.Sprintf("expected directory at %s", e.Path)
}

// InvalidPrefixPartError is yielded during iteration when a directory name
// does not have the width configured for its level.
type InvalidPrefixPartError struct {
	Path string
}

func (e *InvalidPrefixPartError) Error() string {
	return fmt.Sprintf("invalid prefix part at %s", e.Path)
}

// InvalidFileStemError is yielded during iteration when a leaf path has no
// file stem to decode.
type InvalidFileStemError struct {
	Path string
}

func (e *InvalidFileStemError) Error() string {
	return fmt.Sprintf("invalid file stem at %s", e.Path)
}

// InvalidExtensionError is yielded during iteration when a leaf file's
// extension violates the extension constraint. Missing is true when the
// constraint required an extension and none was present.
type InvalidExtensionError struct {
	Extension string
	Missing   bool
}

func (e *InvalidExtensionError) Error() string {
	if e.Missing {
		return "invalid extension: none observed"
	}
	return fmt.Sprintf("invalid extension %q", e.Extension)
}

// InvalidFileStemLengthError is yielded during iteration when a leaf file's
// stem length violates the length constraint. Missing is true when the path
// had no stem to measure.
type InvalidFileStemLengthError struct {
	Length  int
	Missing bool
}

func (e *InvalidFileStemLengthError) Error() string {
	if e.Missing {
		return "invalid file stem length: no file stem"
	}
	return fmt.Sprintf("invalid file stem length %d", e.Length)
}

// InvalidByteError is returned by scheme decoding when the input contains a
// byte outside the scheme's alphabet.
type InvalidByteError struct {
	Byte byte
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("invalid byte %q in encoded name", e.Byte)
}

// InvalidLengthError is returned by scheme decoding when the input has a
// length the scheme cannot produce.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid encoded name length %d", e.Length)
}
