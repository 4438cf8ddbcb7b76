package ir

import (
	"bytes"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sdn-platform/p4ir/bytestring"
)

// LPM is a longest-prefix match: a value whose top PrefixLength bits
// are significant.
type LPM struct {
	Value        Value
	PrefixLength int
}

// Ternary is a masked match: only the bits set in Mask are compared.
type Ternary struct {
	Value Value
	Mask  Value
}

// LPMByteString converts the PI form of an LPM match into IR. Bits set
// outside the prefix are rejected rather than silently masked off. A
// wild-card match (prefix length 0) must be represented by omitting
// the match altogether.
func LPMByteString(format Format, bitwidth int, pi []byte, prefixLen int) (LPM, error) {
	if prefixLen > bitwidth {
		return LPM{}, status.Errorf(codes.InvalidArgument,
			"prefix length %d is greater than bitwidth %d in LPM", prefixLen, bitwidth)
	}
	if prefixLen == 0 {
		return LPM{}, status.Errorf(codes.InvalidArgument,
			"a wild-card LPM match (i.e., prefix length of 0) must be represented by omitting the match altogether")
	}

	value, err := bytestring.Normalize(pi, bitwidth)
	if err != nil {
		return LPM{}, err
	}
	mask, err := bytestring.PrefixMask(prefixLen, bitwidth)
	if err != nil {
		return LPM{}, err
	}
	if err := requireWithinMask(value, mask); err != nil {
		return LPM{}, status.Errorf(codes.InvalidArgument,
			"LPM value %#x has masked bits that are set, prefix length %d", value, prefixLen)
	}

	irValue, err := FormatByteString(format, bitwidth, value)
	if err != nil {
		return LPM{}, err
	}
	return LPM{Value: irValue, PrefixLength: prefixLen}, nil
}

// ByteString converts the LPM match back into its normalized PI value,
// re-checking that no bits are set outside the prefix.
func (m LPM) ByteString(bitwidth int) ([]byte, error) {
	if m.PrefixLength > bitwidth {
		return nil, status.Errorf(codes.InvalidArgument,
			"prefix length %d is greater than bitwidth %d in LPM", m.PrefixLength, bitwidth)
	}

	value, err := m.Value.NormalizedByteString(bitwidth)
	if err != nil {
		return nil, err
	}
	mask, err := bytestring.PrefixMask(m.PrefixLength, bitwidth)
	if err != nil {
		return nil, err
	}
	if err := requireWithinMask(value, mask); err != nil {
		return nil, status.Errorf(codes.InvalidArgument,
			"LPM value %q has masked bits that are set, prefix length %d", m.Value, m.PrefixLength)
	}
	return value, nil
}

// TernaryByteString converts the PI form of a ternary match into IR.
// An all-zero mask must be represented by omitting the match
// altogether, and the value may not have bits set that the mask
// ignores.
func TernaryByteString(format Format, bitwidth int, piValue, piMask []byte) (Ternary, error) {
	value, err := bytestring.Normalize(piValue, bitwidth)
	if err != nil {
		return Ternary{}, err
	}
	mask, err := bytestring.Normalize(piMask, bitwidth)
	if err != nil {
		return Ternary{}, err
	}
	if bytestring.IsAllZeros(mask) {
		return Ternary{}, status.Errorf(codes.InvalidArgument,
			"a wild-card ternary match (i.e., mask of 0) must be represented by omitting the match altogether")
	}
	if err := requireWithinMask(value, mask); err != nil {
		return Ternary{}, status.Errorf(codes.InvalidArgument,
			"ternary value %#x has masked bits that are set, mask %#x", value, mask)
	}

	irValue, err := FormatByteString(format, bitwidth, value)
	if err != nil {
		return Ternary{}, err
	}
	irMask, err := FormatByteString(format, bitwidth, mask)
	if err != nil {
		return Ternary{}, err
	}
	return Ternary{Value: irValue, Mask: irMask}, nil
}

// ByteString converts the ternary match back into its normalized PI
// value and mask pair.
func (m Ternary) ByteString(bitwidth int) (value, mask []byte, err error) {
	if value, err = m.Value.NormalizedByteString(bitwidth); err != nil {
		return nil, nil, err
	}
	if mask, err = m.Mask.NormalizedByteString(bitwidth); err != nil {
		return nil, nil, err
	}
	if bytestring.IsAllZeros(mask) {
		return nil, nil, status.Errorf(codes.InvalidArgument,
			"a wild-card ternary match (i.e., mask of 0) must be represented by omitting the match altogether")
	}
	if err := requireWithinMask(value, mask); err != nil {
		return nil, nil, status.Errorf(codes.InvalidArgument,
			"ternary value %q has masked bits that are set, mask %q", m.Value, m.Mask)
	}
	return value, mask, nil
}

func requireWithinMask(value, mask []byte) error {
	masked, err := bytestring.Intersect(value, mask)
	if err != nil {
		return err
	}
	if !bytes.Equal(masked, value) {
		return status.Errorf(codes.InvalidArgument, "value has bits set outside the mask")
	}
	return nil
}
