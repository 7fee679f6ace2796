package shardtree

import "fmt"

// LengthConstraint restricts the length of leaf file stems.
// The zero value is not meaningful; use FixedLength or LengthRange.
type LengthConstraint struct {
	min   int
	max   int
	fixed bool
}

// FixedLength requires file stems of exactly n characters.
func FixedLength(n int) LengthConstraint {
	return LengthConstraint{min: n, max: n, fixed: true}
}

// LengthRange requires file stem lengths in the half-open interval [min, max).
func LengthRange(min, max int) LengthConstraint {
	return LengthConstraint{min: min, max: max}
}

// Max returns the largest length the constraint references. For a range
// constraint this is the exclusive upper bound.
func (c LengthConstraint) Max() int {
	return c.max
}

// check reports whether a stem of length n satisfies the constraint.
func (c LengthConstraint) check(n int) bool {
	if c.fixed {
		return n == c.max
	}
	return n >= c.min && n < c.max
}

func (c LengthConstraint) String() string {
	if c.fixed {
		return fmt.Sprintf("exactly %d", c.max)
	}
	return fmt.Sprintf("in [%d, %d)", c.min, c.max)
}

type extensionKind int

const (
	extensionNone extensionKind = iota
	extensionAny
	extensionFixed
)

// ExtensionConstraint restricts the extension of leaf files.
// The zero value forbids extensions; use NoExtension, AnyExtension or
// Extension to be explicit.
type ExtensionConstraint struct {
	kind extensionKind
	ext  string
}

// NoExtension forbids leaf files from carrying an extension.
func NoExtension() ExtensionConstraint {
	return ExtensionConstraint{kind: extensionNone}
}

// AnyExtension requires leaf files to carry an extension, with any value.
func AnyExtension() ExtensionConstraint {
	return ExtensionConstraint{kind: extensionAny}
}

// Extension requires leaf files to carry exactly the given extension,
// written without the leading dot.
func Extension(ext string) ExtensionConstraint {
	return ExtensionConstraint{kind: extensionFixed, ext: ext}
}

// check validates an observed extension. ok reports whether the file had an
// extension at all. On failure it returns the offending extension and whether
// one was present, mirroring the InvalidExtensionError fields.
func (c ExtensionConstraint) check(ext string, ok bool) *InvalidExtensionError {
	switch c.kind {
	case extensionNone:
		if ok {
			return &InvalidExtensionError{Extension: ext}
		}
	case extensionAny:
		if !ok {
			return &InvalidExtensionError{Missing: true}
		}
	case extensionFixed:
		if !ok {
			return &InvalidExtensionError{Missing: true}
		}
		if ext != c.ext {
			return &InvalidExtensionError{Extension: ext}
		}
	}
	return nil
}

func (c ExtensionConstraint) String() string {
	switch c.kind {
	case extensionAny:
		return "any extension"
	case extensionFixed:
		return "extension " + c.ext
	default:
		return "no extension"
	}
}
