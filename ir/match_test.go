package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLPMByteString(t *testing.T) {
	lpm, err := LPMByteString(FormatIPv4, 32, []byte{0x0a, 0x00, 0x00, 0x00}, 8)
	require.NoError(t, err)
	assert.Equal(t, IPv4Value("10.0.0.0"), lpm.Value)
	assert.Equal(t, 8, lpm.PrefixLength)

	back, err := lpm.ByteString(32)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x00, 0x00, 0x00}, back)
}

func TestLPMByteStringInvalid(t *testing.T) {
	tests := []struct {
		name      string
		pi        []byte
		prefixLen int
	}{
		{"prefix longer than bitwidth", []byte{0x0a, 0x00, 0x00, 0x00}, 33},
		{"wildcard prefix", []byte{0x0a, 0x00, 0x00, 0x00}, 0},
		{"bits outside prefix", []byte{0x0a, 0x00, 0x00, 0x01}, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LPMByteString(FormatIPv4, 32, tc.pi, tc.prefixLen)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestLPMValueByteStringChecksPrefix(t *testing.T) {
	lpm := LPM{Value: IPv4Value("10.0.0.1"), PrefixLength: 8}
	_, err := lpm.ByteString(32)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestTernaryByteString(t *testing.T) {
	ternary, err := TernaryByteString(FormatHexString, 12, []byte{0x03, 0x80}, []byte{0x03, 0xc0})
	require.NoError(t, err)
	assert.Equal(t, HexStringValue("0x0380"), ternary.Value)
	assert.Equal(t, HexStringValue("0x03c0"), ternary.Mask)

	value, mask, err := ternary.ByteString(12)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x80}, value)
	assert.Equal(t, []byte{0x03, 0xc0}, mask)
}

func TestTernaryByteStringInvalid(t *testing.T) {
	tests := []struct {
		name        string
		value, mask []byte
	}{
		{"wildcard mask", []byte{0x00}, []byte{0x00}},
		{"bits outside mask", []byte{0x0f}, []byte{0x0c}},
		{"value exceeds bitwidth", []byte{0x01, 0x00}, []byte{0xff}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TernaryByteString(FormatHexString, 8, tc.value, tc.mask)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestTernaryValueByteStringChecksMask(t *testing.T) {
	ternary := Ternary{
		Value: HexStringValue("0x0f"),
		Mask:  HexStringValue("0x00"),
	}
	_, _, err := ternary.ByteString(8)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
