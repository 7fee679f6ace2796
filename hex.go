package shardtree

import "strings"

const (
	hexDigitsLower = "0123456789abcdef"
	hexDigitsUpper = "0123456789ABCDEF"
)

// HexScheme encodes fixed-size byte names as hex strings twice their width.
type HexScheme struct {
	size       int
	letterCase Case
}

// NewHexScheme returns a scheme for names of exactly size bytes.
// Encoded names are 2*size hex characters in the given letter case.
func NewHexScheme(size int, letterCase Case) *HexScheme {
	return &HexScheme{size: size, letterCase: letterCase}
}

// FixedLength implements Scheme.
func (s *HexScheme) FixedLength() (int, bool) { return s.size * 2, true }

// EncodeName implements Scheme. The name must be exactly the scheme's size;
// the length is not carried by the type, so a wrong-size name surfaces later
// through the tree's length constraint rather than here.
func (s *HexScheme) EncodeName(name []byte) string {
	return hexEncode(name, s.letterCase)
}

// DecodeFileStem implements Scheme.
func (s *HexScheme) DecodeFileStem(stem string) ([]byte, error) {
	if len(stem) != s.size*2 {
		return nil, &InvalidLengthError{Length: len(stem)}
	}
	return hexDecode(stem, s.letterCase)
}

// ComparePrefixPart implements Scheme with byte-lexicographic order, which
// matches encoded-value order for both hex alphabets.
func (s *HexScheme) ComparePrefixPart(a, b string) (int, error) {
	return strings.Compare(a, b), nil
}

// AnyLengthHexScheme encodes variable-length byte names as even-length hex
// strings.
type AnyLengthHexScheme struct {
	letterCase Case
}

// NewAnyLengthHexScheme returns a hex scheme without a fixed name size.
func NewAnyLengthHexScheme(letterCase Case) *AnyLengthHexScheme {
	return &AnyLengthHexScheme{letterCase: letterCase}
}

// FixedLength implements Scheme. The encoded width depends on the name.
func (s *AnyLengthHexScheme) FixedLength() (int, bool) { return 0, false }

// EncodeName implements Scheme.
func (s *AnyLengthHexScheme) EncodeName(name []byte) string {
	return hexEncode(name, s.letterCase)
}

// DecodeFileStem implements Scheme.
func (s *AnyLengthHexScheme) DecodeFileStem(stem string) ([]byte, error) {
	if len(stem)%2 != 0 {
		return nil, &InvalidLengthError{Length: len(stem)}
	}
	return hexDecode(stem, s.letterCase)
}

// ComparePrefixPart implements Scheme with byte-lexicographic order.
func (s *AnyLengthHexScheme) ComparePrefixPart(a, b string) (int, error) {
	return strings.Compare(a, b), nil
}

// hexEncode writes bytes as hex digits. CaseAny encodes lowercase.
func hexEncode(bytes []byte, letterCase Case) string {
	digits := hexDigitsLower
	if letterCase == CaseUpper {
		digits = hexDigitsUpper
	}

	var out strings.Builder
	out.Grow(len(bytes) * 2)
	for _, b := range bytes {
		out.WriteByte(digits[b>>4])
		out.WriteByte(digits[b&0x0f])
	}
	return out.String()
}

// hexDecode parses an even-length hex string, reporting the first byte
// outside the accepted alphabet.
func hexDecode(text string, letterCase Case) ([]byte, error) {
	out := make([]byte, len(text)/2)
	for i := range out {
		hi, err := hexDigitValue(text[i*2], letterCase)
		if err != nil {
			return nil, err
		}
		lo, err := hexDigitValue(text[i*2+1], letterCase)
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigitValue(c byte, letterCase Case) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f' && letterCase != CaseUpper:
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F' && letterCase != CaseLower:
		return c - 'A' + 10, nil
	}
	return 0, &InvalidByteError{Byte: c}
}
