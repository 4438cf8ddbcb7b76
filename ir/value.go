// Package ir converts between the raw, protocol-independent (PI) byte
// strings carried by P4Runtime and typed intermediate-representation
// (IR) values that render as MAC addresses, IPv4/IPv6 addresses, hex
// strings or plain SDN strings, depending on the field's metadata.
//
// All operations are pure functions over their inputs; nothing here
// retains state between calls.
package ir

import (
	"encoding/hex"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sdn-platform/p4ir/bytestring"
)

// HexStringPrefix starts every hex-string rendering.
const HexStringPrefix = "0x"

// Value is the typed, human-readable rendering of a PI byte string.
// The format tag and its payload are inseparable by construction: a
// Value can only be built through one of the typed constructors, so a
// tag/payload mismatch is unrepresentable.
type Value struct {
	format Format
	text   string
}

// HexStringValue wraps an "0x"-prefixed hex rendering.
func HexStringValue(text string) Value { return Value{FormatHexString, text} }

// MACValue wraps a colon-separated MAC rendering.
func MACValue(text string) Value { return Value{FormatMAC, text} }

// IPv4Value wraps a dotted-decimal IPv4 rendering.
func IPv4Value(text string) Value { return Value{FormatIPv4, text} }

// IPv6Value wraps a colon-hex IPv6 rendering.
func IPv6Value(text string) Value { return Value{FormatIPv6, text} }

// StringValue wraps a plain SDN string.
func StringValue(text string) Value { return Value{FormatString, text} }

// Format returns the active format tag.
func (v Value) Format() Format { return v.format }

// Text returns the textual rendering.
func (v Value) Text() string { return v.text }

func (v Value) String() string { return v.text }

// NewValue wraps an already-formatted string into the Value variant
// indicated by the format, without re-validating its internal
// structure. This is the entry point for values built from user or
// configuration input rather than from wire bytes.
func NewValue(text string, format Format) (Value, error) {
	switch format {
	case FormatHexString, FormatMAC, FormatIPv4, FormatIPv6, FormatString:
		return Value{format: format, text: text}, nil
	}
	return Value{}, status.Errorf(codes.InvalidArgument, "unexpected format %q", format)
}

// ValidateFormat fails unless the value's active format equals the
// format declared for the field it represents. The constructors make a
// mismatch impossible within this package; the check remains as the
// contract at serialization boundaries.
func (v Value) ValidateFormat(format Format) error {
	if v.format != format {
		return status.Errorf(codes.InvalidArgument, "expected format %q, but got %q instead", format, v.format)
	}
	return nil
}

// FormatByteString normalizes a PI byte string to the field's
// bit-width and renders it in the given format. String-formatted
// fields pass through untouched: an SDN string is not bit-width
// constrained.
func FormatByteString(format Format, bitwidth int, pi []byte) (Value, error) {
	if format == FormatString {
		return StringValue(string(pi)), nil
	}

	norm, err := bytestring.Normalize(pi, bitwidth)
	if err != nil {
		return Value{}, err
	}
	switch format {
	case FormatMAC:
		mac, err := MACFromByteString(norm)
		if err != nil {
			return Value{}, err
		}
		return MACValue(mac), nil
	case FormatIPv4:
		ipv4, err := IPv4FromByteString(norm)
		if err != nil {
			return Value{}, err
		}
		return IPv4Value(ipv4), nil
	case FormatIPv6:
		ipv6, err := IPv6FromByteString(norm)
		if err != nil {
			return Value{}, err
		}
		return IPv6Value(ipv6), nil
	case FormatHexString:
		return HexStringValue(HexStringPrefix + hex.EncodeToString(norm)), nil
	}
	return Value{}, status.Errorf(codes.InvalidArgument, "unexpected format %q", format)
}

// ByteString converts the value back into PI bytes. It fails if the
// textual value is not valid for its format.
func (v Value) ByteString() ([]byte, error) {
	switch v.format {
	case FormatMAC:
		return MACToByteString(v.text)
	case FormatIPv4:
		return IPv4ToByteString(v.text)
	case FormatIPv6:
		return IPv6ToByteString(v.text)
	case FormatString:
		return []byte(v.text), nil
	case FormatHexString:
		return hexStringToByteString(v.text)
	}
	return nil, status.Errorf(codes.InvalidArgument, "unexpected format %q", v.format)
}

// NormalizedByteString converts the value into PI bytes padded to the
// field's bit-width, the form a table-entry builder puts on the wire.
func (v Value) NormalizedByteString(bitwidth int) ([]byte, error) {
	b, err := v.ByteString()
	if err != nil {
		return nil, err
	}
	if v.format == FormatString {
		return b, nil
	}
	return bytestring.Normalize(b, bitwidth)
}

func hexStringToByteString(text string) ([]byte, error) {
	if len(text) < len(HexStringPrefix) || text[:len(HexStringPrefix)] != HexStringPrefix {
		return nil, status.Errorf(codes.InvalidArgument,
			"hex string %q does not start with %s", text, HexStringPrefix)
	}
	stripped := text[len(HexStringPrefix):]
	for i := 0; i < len(stripped); i++ {
		if !isLowerHex(stripped[i]) {
			return nil, status.Errorf(codes.InvalidArgument, "hex string %q contains non-hexadecimal characters", text)
		}
	}
	if len(stripped)%2 != 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid hex string with odd number of characters: %q", text)
	}
	return hex.DecodeString(stripped)
}
