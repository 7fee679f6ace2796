package shardtree

import (
	"encoding/base32"
	"fmt"
)

var base32Codec = base32.StdEncoding.WithPadding(base32.NoPadding)

// Base32Scheme encodes fixed-size byte names as unpadded RFC 4648 base32
// strings. The size must be a multiple of 5 so the encoded form needs no
// padding; the encoded length is size/5*8.
//
// The base32 alphabet places uppercase letters A-Z before the digits 2-7 in
// encoded-value order, but '2'..'7' sort before 'A'..'Z' as bytes, so the
// scheme overrides the prefix-part ordering.
type Base32Scheme struct {
	size int
}

// NewBase32Scheme returns a scheme for names of exactly size bytes.
// It panics if size is not a multiple of 5.
func NewBase32Scheme(size int) *Base32Scheme {
	if size%5 != 0 {
		panic(fmt.Sprintf("shardtree: base32 scheme size %d is not a multiple of 5", size))
	}
	return &Base32Scheme{size: size}
}

// FixedLength implements Scheme.
func (s *Base32Scheme) FixedLength() (int, bool) { return s.size / 5 * 8, true }

// EncodeName implements Scheme.
func (s *Base32Scheme) EncodeName(name []byte) string {
	return base32Codec.EncodeToString(name)
}

// DecodeFileStem implements Scheme.
func (s *Base32Scheme) DecodeFileStem(stem string) ([]byte, error) {
	if len(stem) != s.size/5*8 {
		return nil, &InvalidLengthError{Length: len(stem)}
	}
	out, err := base32Codec.DecodeString(stem)
	if err != nil {
		if corrupt, ok := err.(base32.CorruptInputError); ok {
			return nil, &InvalidByteError{Byte: stem[corrupt]}
		}
		return nil, err
	}
	return out, nil
}

// ComparePrefixPart implements Scheme in encoded-value order: letters first,
// then digits 2-7, with length as the final tiebreak.
func (s *Base32Scheme) ComparePrefixPart(a, b string) (int, error) {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, err := base32CharRank(a[i])
		if err != nil {
			return 0, err
		}
		cb, err := base32CharRank(b[i])
		if err != nil {
			return 0, err
		}
		if ca != cb {
			if ca < cb {
				return -1, nil
			}
			return 1, nil
		}
	}
	// Equal up to the shorter length; the remainder of the longer name must
	// still be within the alphabet for the comparison to be meaningful.
	longer := a
	if len(b) > len(a) {
		longer = b
	}
	for i := min(len(a), len(b)); i < len(longer); i++ {
		if _, err := base32CharRank(longer[i]); err != nil {
			return 0, err
		}
	}
	return len(a) - len(b), nil
}

// base32CharRank maps a base32 alphabet byte to its encoded-value rank:
// 'A'..'Z' before '2'..'7'.
func base32CharRank(c byte) (int, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), nil
	case c >= '2' && c <= '7':
		return 26 + int(c-'2'), nil
	}
	return 0, &InvalidByteError{Byte: c}
}
