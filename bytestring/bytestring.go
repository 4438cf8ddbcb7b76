// Package bytestring implements the low-level byte-string operations of
// the P4Runtime wire encoding: field values travel as big-endian
// unsigned integers padded to a declared bit-width.
//
// These functions are the only place where endianness and padding rules
// are codified; everything format-specific is built on top of them.
package bytestring

import (
	"math/bits"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	BitsPerByte = 8

	MACBits   = 48
	MACBytes  = MACBits / BitsPerByte
	IPv4Bits  = 32
	IPv4Bytes = IPv4Bits / BitsPerByte
	IPv6Bits  = 128
	IPv6Bytes = IPv6Bits / BitsPerByte
)

// SignificantBits returns the number of bits required to represent the
// byte string as a big-endian unsigned integer, that is the index of
// the highest set bit plus one. An all-zero string yields 0.
func SignificantBits(b []byte) int {
	for i, c := range b {
		if c != 0 {
			return (len(b)-i-1)*BitsPerByte + bits.Len8(c)
		}
	}
	return 0
}

// Normalize returns a byte string of exactly ceil(bitwidth/8) bytes,
// stripping or adding leading zero bytes as needed. It fails if the
// value does not fit in the given bit-width.
func Normalize(raw []byte, bitwidth int) ([]byte, error) {
	if bitwidth < 1 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid bitwidth %d: must be positive", bitwidth)
	}
	if n := SignificantBits(raw); n > bitwidth {
		return nil, status.Errorf(codes.InvalidArgument, "byte string of %d bits does not fit in %d bits", n, bitwidth)
	}

	out := make([]byte, byteWidth(bitwidth))
	stripped := Canonical(raw)
	copy(out[len(out)-len(stripped):], stripped)
	return out, nil
}

// Canonical strips leading zero bytes, keeping at least one byte for a
// non-empty input.
func Canonical(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	return b[i:]
}

// ToUint64 decodes a big-endian byte string of the given bit-width.
// Bit-widths above 64 cannot fit and fail.
func ToUint64(b []byte, bitwidth int) (uint64, error) {
	if bitwidth > 64 {
		return 0, status.Errorf(codes.InvalidArgument, "cannot convert value with bitwidth %d to uint", bitwidth)
	}
	norm, err := Normalize(b, bitwidth)
	if err != nil {
		return 0, err
	}

	value := uint64(0)
	for _, c := range norm {
		value = value<<BitsPerByte | uint64(c)
	}
	return value, nil
}

// FromUint64 encodes a value into a big-endian byte string of exactly
// ceil(bitwidth/8) bytes. It fails if the value does not fit in the
// given bit-width.
func FromUint64(value uint64, bitwidth int) ([]byte, error) {
	if bitwidth < 1 || bitwidth > 64 {
		return nil, status.Errorf(codes.InvalidArgument, "cannot convert value with bitwidth %d to byte string", bitwidth)
	}
	if bitwidth < 64 && value>>bitwidth != 0 {
		return nil, status.Errorf(codes.InvalidArgument, "value %#x does not fit in %d bits", value, bitwidth)
	}

	out := make([]byte, byteWidth(bitwidth))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(value)
		value >>= BitsPerByte
	}
	return out, nil
}

// IsAllZeros reports whether every byte of the string is zero.
func IsAllZeros(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Intersect returns the bytewise AND of two byte strings of equal
// length.
func Intersect(left, right []byte) ([]byte, error) {
	if len(left) != len(right) {
		return nil, status.Errorf(codes.InvalidArgument,
			"cannot intersect byte strings of unequal length: %d bytes vs %d bytes", len(left), len(right))
	}

	out := make([]byte, len(left))
	for i := range left {
		out[i] = left[i] & right[i]
	}
	return out, nil
}

// PrefixMask builds the longest-prefix-match mask for a field of the
// given bit-width: the top prefixLen bits of the field are set. When
// the bit-width is not a byte multiple the field occupies the low bits
// of its leading byte.
func PrefixMask(prefixLen, bitwidth int) ([]byte, error) {
	if bitwidth < 1 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid bitwidth %d: must be positive", bitwidth)
	}
	if prefixLen < 0 || prefixLen > bitwidth {
		return nil, status.Errorf(codes.InvalidArgument,
			"prefix length %d must be between 0 and the bitwidth %d", prefixLen, bitwidth)
	}

	out := make([]byte, byteWidth(bitwidth))
	remaining := prefixLen
	for i := range out {
		width := BitsPerByte
		if i == 0 && bitwidth%BitsPerByte != 0 {
			width = bitwidth % BitsPerByte
		}
		switch {
		case remaining >= width:
			out[i] = byte(1<<width - 1)
			remaining -= width
		case remaining > 0:
			out[i] = byte(1<<width-1) &^ byte(1<<(width-remaining)-1)
			remaining = 0
		}
	}
	return out, nil
}

func byteWidth(bitwidth int) int {
	return (bitwidth + BitsPerByte - 1) / BitsPerByte
}
