package ir

import (
	"net"
	"net/netip"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sdn-platform/p4ir/bytestring"
)

// MACFromByteString renders a 6-byte string as six lowercase hex
// octets joined by colons, e.g. "aa:bb:cc:dd:ee:ff".
func MACFromByteString(b []byte) (string, error) {
	if len(b) != bytestring.MACBytes {
		return "", status.Errorf(codes.InvalidArgument,
			"expected a MAC address of %d bytes, but got %d instead", bytestring.MACBytes, len(b))
	}
	return net.HardwareAddr(b).String(), nil
}

// MACToByteString parses the colon-separated MAC form back into 6
// bytes. Only the canonical form is accepted: zero-padded lowercase
// hex octets.
func MACToByteString(text string) ([]byte, error) {
	if !isCanonicalMAC(text) {
		return nil, status.Errorf(codes.InvalidArgument,
			"%q cannot be parsed as a MAC address: expected xx:xx:xx:xx:xx:xx with lowercase hex digits", text)
	}
	hw, err := net.ParseMAC(text)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%q cannot be parsed as a MAC address: %v", text, err)
	}
	return hw, nil
}

func isCanonicalMAC(s string) bool {
	if len(s) != 17 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i%3 == 2 {
			if s[i] != ':' {
				return false
			}
			continue
		}
		if !isLowerHex(s[i]) {
			return false
		}
	}
	return true
}

// IPv4FromByteString renders a 4-byte string in dotted-decimal form.
func IPv4FromByteString(b []byte) (string, error) {
	if len(b) != bytestring.IPv4Bytes {
		return "", status.Errorf(codes.InvalidArgument,
			"expected an IPv4 address of %d bytes, but got %d instead", bytestring.IPv4Bytes, len(b))
	}
	return netip.AddrFrom4([4]byte(b)).String(), nil
}

// IPv4ToByteString parses the dotted-decimal form back into 4 bytes.
func IPv4ToByteString(text string) ([]byte, error) {
	addr, err := netip.ParseAddr(text)
	if err != nil || !addr.Is4() {
		return nil, status.Errorf(codes.InvalidArgument, "invalid IPv4 address %q", text)
	}
	b := addr.As4()
	return b[:], nil
}

// IPv6FromByteString renders a 16-byte string in the RFC 5952
// canonical form: lowercase hex groups with the longest zero run
// compressed to "::".
func IPv6FromByteString(b []byte) (string, error) {
	if len(b) != bytestring.IPv6Bytes {
		return "", status.Errorf(codes.InvalidArgument,
			"expected an IPv6 address of %d bytes, but got %d instead", bytestring.IPv6Bytes, len(b))
	}
	return netip.AddrFrom16([16]byte(b)).String(), nil
}

// IPv6ToByteString parses the colon-hex form back into 16 bytes. Hex
// digits must be lowercase. The dotted suffix of an IPv4-mapped
// address (e.g. "::ffff:192.0.2.1") is accepted, since rendering
// produces it.
func IPv6ToByteString(text string) ([]byte, error) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !isLowerHex(c) && c != ':' && c != '.' {
			return nil, status.Errorf(codes.InvalidArgument,
				"%q cannot be parsed as an IPv6 address: only lowercase hexadecimal characters are allowed", text)
		}
	}

	addr, err := netip.ParseAddr(text)
	if err != nil || addr.Is4() {
		return nil, status.Errorf(codes.InvalidArgument, "invalid IPv6 address %q", text)
	}
	b := addr.As16()
	return b[:], nil
}

func isLowerHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f'
}
