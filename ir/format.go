package ir

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sdn-platform/p4ir/annotation"
	"github.com/sdn-platform/p4ir/bytestring"
)

// Format selects which structured renderer governs a field's value.
// Exactly one format governs a given field.
type Format int

const (
	// FormatHexString renders a generic byte blob as "0x"-prefixed
	// lowercase hex.
	FormatHexString Format = iota
	// FormatMAC renders a 48-bit hardware address.
	FormatMAC
	// FormatIPv4 renders a 32-bit address in dotted-decimal form.
	FormatIPv4
	// FormatIPv6 renders a 128-bit address in RFC 5952 colon-hex form.
	FormatIPv6
	// FormatString carries an SDN-level string that is not bit-width
	// constrained.
	FormatString
)

func (f Format) String() string {
	switch f {
	case FormatHexString:
		return "HEX_STRING"
	case FormatMAC:
		return "MAC"
	case FormatIPv4:
		return "IPV4"
	case FormatIPv6:
		return "IPV6"
	case FormatString:
		return "STRING"
	}
	return "UNKNOWN"
}

// ParseFormat converts a format name as printed by Format.String back
// into a Format.
func ParseFormat(name string) (Format, error) {
	for _, f := range []Format{FormatHexString, FormatMAC, FormatIPv4, FormatIPv6, FormatString} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, status.Errorf(codes.InvalidArgument, "unknown format %q", name)
}

// FormatAnnotation is the label of the annotation carrying an explicit
// format directive, e.g. "@format(IPV4_ADDRESS)".
const FormatAnnotation = "format"

// GetFormat resolves the format of a field from its annotations, its
// bit-width and its SDN-string flag. An SDN-string field is always
// FormatString and may not carry a format directive. An explicit
// directive otherwise wins. Without either, the bit-width picks the
// default: 48 is a MAC, 32 an IPv4 and 128 an IPv6 address; anything
// else is a hex string.
func GetFormat(annotations []string, bitwidth int, isSdnString bool) (Format, error) {
	format := FormatHexString
	if isSdnString {
		format = FormatString
	}

	body, err := annotation.GetBody(FormatAnnotation, annotations)
	switch status.Code(err) {
	case codes.OK:
		if format != FormatHexString {
			return 0, status.Errorf(codes.InvalidArgument, "found conflicting format annotations")
		}
		switch body {
		case "MAC_ADDRESS":
			format = FormatMAC
		case "IPV4_ADDRESS":
			format = FormatIPv4
		case "IPV6_ADDRESS":
			format = FormatIPv6
		case "HEX_STRING":
			format = FormatHexString
		default:
			return 0, status.Errorf(codes.InvalidArgument, "unknown format annotation %q", body)
		}
	case codes.NotFound:
		if !isSdnString {
			switch bitwidth {
			case bytestring.MACBits:
				format = FormatMAC
			case bytestring.IPv4Bits:
				format = FormatIPv4
			case bytestring.IPv6Bits:
				format = FormatIPv6
			}
		}
	default:
		// Multiple format annotations on a single field.
		return 0, err
	}

	switch {
	case format == FormatMAC && bitwidth != bytestring.MACBits:
		return 0, status.Errorf(codes.InvalidArgument, "only %d bit values can be formatted as a MAC address", bytestring.MACBits)
	case format == FormatIPv4 && bitwidth != bytestring.IPv4Bits:
		return 0, status.Errorf(codes.InvalidArgument, "only %d bit values can be formatted as an IPv4 address", bytestring.IPv4Bits)
	case format == FormatIPv6 && bitwidth != bytestring.IPv6Bits:
		return 0, status.Errorf(codes.InvalidArgument, "only %d bit values can be formatted as an IPv6 address", bytestring.IPv6Bits)
	}
	return format, nil
}
