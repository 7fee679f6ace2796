package shardtree

import (
	"strings"
	"unicode/utf8"
)

// Case selects the letter case a scheme accepts and produces.
type Case int

const (
	// CaseLower accepts and produces lowercase letters.
	CaseLower Case = iota
	// CaseUpper accepts and produces uppercase letters.
	CaseUpper
	// CaseAny accepts either case and produces lowercase letters.
	CaseAny
)

// Scheme converts between a logical name of type N and its on-disk string
// form, and orders the raw directory names derived from it.
//
// EncodeName must succeed for every valid name; DecodeFileStem must invert it
// for every string EncodeName produces and reject everything else.
type Scheme[N any] interface {
	// FixedLength returns the encoded string length when it is a pure
	// function of the scheme's configuration, as for hex and base32.
	// Variable-width schemes report false.
	FixedLength() (int, bool)

	// EncodeName returns the on-disk string form of a name.
	EncodeName(name N) string

	// DecodeFileStem parses a leaf file stem back into a name.
	DecodeFileStem(stem string) (N, error)

	// ComparePrefixPart orders two raw prefix-directory names, returning a
	// negative, zero or positive value like strings.Compare. Schemes whose
	// alphabet does not sort byte-lexicographically override this; it may
	// reject names outside the alphabet.
	ComparePrefixPart(a, b string) (int, error)
}

// IdentityScheme stores names verbatim. Every path component round-trips
// losslessly and decoding cannot fail.
type IdentityScheme struct{}

// FixedLength implements Scheme. Identity names have no fixed width.
func (IdentityScheme) FixedLength() (int, bool) { return 0, false }

// EncodeName implements Scheme.
func (IdentityScheme) EncodeName(name string) string { return name }

// DecodeFileStem implements Scheme.
func (IdentityScheme) DecodeFileStem(stem string) (string, error) { return stem, nil }

// ComparePrefixPart implements Scheme with byte-lexicographic order.
func (IdentityScheme) ComparePrefixPart(a, b string) (int, error) {
	return strings.Compare(a, b), nil
}

// UTF8Scheme stores text names. Decoding rejects file stems that are not
// valid UTF-8.
type UTF8Scheme struct{}

// FixedLength implements Scheme. Text names have no fixed width.
func (UTF8Scheme) FixedLength() (int, bool) { return 0, false }

// EncodeName implements Scheme.
func (UTF8Scheme) EncodeName(name string) string { return name }

// DecodeFileStem implements Scheme.
func (UTF8Scheme) DecodeFileStem(stem string) (string, error) {
	if !utf8.ValidString(stem) {
		return "", ErrNotUTF8
	}
	return stem, nil
}

// ComparePrefixPart implements Scheme with byte-lexicographic order.
func (UTF8Scheme) ComparePrefixPart(a, b string) (int, error) {
	return strings.Compare(a, b), nil
}
