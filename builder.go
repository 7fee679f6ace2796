package shardtree

import (
	"slices"

	"github.com/spf13/afero"
)

// Builder accumulates tree configuration through chained calls and produces
// an immutable Tree. Inconsistent configuration is surfaced once, by Build.
type Builder[N any] struct {
	base                string
	fs                  afero.Fs
	lengthConstraint    *LengthConstraint
	extensionConstraint *ExtensionConstraint
	prefixPartLengths   []int
	scheme              Scheme[N]
}

// NewBuilder starts a builder rooted at base, using the identity scheme and
// the OS filesystem until configured otherwise.
func NewBuilder(base string) *Builder[string] {
	return &Builder[string]{
		base:   base,
		fs:     afero.NewOsFs(),
		scheme: IdentityScheme{},
	}
}

// WithScheme replaces the builder's scheme, changing its name type. If the
// new scheme declares a fixed encoded length, it overwrites any length
// constraint set so far with a matching fixed constraint.
//
// This is a function rather than a method because a method cannot change the
// builder's type parameter.
func WithScheme[M, N any](b *Builder[M], scheme Scheme[N]) *Builder[N] {
	lengthConstraint := b.lengthConstraint
	if n, ok := scheme.FixedLength(); ok {
		c := FixedLength(n)
		lengthConstraint = &c
	}

	return &Builder[N]{
		base:                b.base,
		fs:                  b.fs,
		lengthConstraint:    lengthConstraint,
		extensionConstraint: b.extensionConstraint,
		prefixPartLengths:   b.prefixPartLengths,
		scheme:              scheme,
	}
}

// WithFs sets the filesystem the tree operates on.
// This is primarily useful for testing with in-memory filesystems.
func (b *Builder[N]) WithFs(fsys afero.Fs) *Builder[N] {
	b.fs = fsys
	return b
}

// WithPrefixPartLengths sets the number of encoded-name characters consumed
// by each directory level, front to back.
func (b *Builder[N]) WithPrefixPartLengths(lengths ...int) *Builder[N] {
	b.prefixPartLengths = slices.Clone(lengths)
	return b
}

// WithLength constrains leaf file stems to exactly n characters.
func (b *Builder[N]) WithLength(n int) *Builder[N] {
	c := FixedLength(n)
	b.lengthConstraint = &c
	return b
}

// WithLengthRange constrains leaf file stem lengths to [min, max).
func (b *Builder[N]) WithLengthRange(min, max int) *Builder[N] {
	c := LengthRange(min, max)
	b.lengthConstraint = &c
	return b
}

// WithExtension requires leaf files to carry exactly the given extension,
// written without the leading dot. Paths returned by the tree include it.
func (b *Builder[N]) WithExtension(ext string) *Builder[N] {
	c := Extension(ext)
	b.extensionConstraint = &c
	return b
}

// WithNoExtension forbids leaf files from carrying an extension.
func (b *Builder[N]) WithNoExtension() *Builder[N] {
	c := NoExtension()
	b.extensionConstraint = &c
	return b
}

// WithAnyExtension requires leaf files to carry an extension, any value.
func (b *Builder[N]) WithAnyExtension() *Builder[N] {
	c := AnyExtension()
	b.extensionConstraint = &c
	return b
}

// Build validates the configuration and returns the immutable tree.
// It fails with an InconsistentPrefixPartsError when the prefix part lengths
// sum to more than the length constraint's maximum.
func (b *Builder[N]) Build() (*Tree[N], error) {
	if b.lengthConstraint != nil {
		total := 0
		for _, length := range b.prefixPartLengths {
			total += length
		}
		if total > b.lengthConstraint.Max() {
			return nil, &InconsistentPrefixPartsError{
				Total:      total,
				Constraint: *b.lengthConstraint,
			}
		}
	}

	return &Tree[N]{
		base:                b.base,
		fs:                  b.fs,
		lengthConstraint:    b.lengthConstraint,
		extensionConstraint: b.extensionConstraint,
		prefixPartLengths:   slices.Clone(b.prefixPartLengths),
		scheme:              b.scheme,
	}, nil
}
