package bytestring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestSignificantBits(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected int
	}{
		{"empty", nil, 0},
		{"single zero byte", []byte{0x00}, 0},
		{"all zeros", []byte{0x00, 0x00, 0x00}, 0},
		{"one", []byte{0x01}, 1},
		{"high bit of a byte", []byte{0x80}, 8},
		{"leading zeros ignored", []byte{0x00, 0x00, 0x01}, 1},
		{"nine bits", []byte{0x01, 0x00}, 9},
		{"mac width", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 48},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SignificantBits(tc.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		bitwidth int
		expected []byte
	}{
		{"pad single byte", []byte{0x01}, 16, []byte{0x00, 0x01}},
		{"strip leading zeros", []byte{0x00, 0x00, 0x01}, 8, []byte{0x01}},
		{"already normalized", []byte{0x11, 0x22}, 16, []byte{0x11, 0x22}},
		{"partial byte width", []byte{0x07}, 3, []byte{0x07}},
		{"empty to zero", nil, 8, []byte{0x00}},
		{"all zeros", []byte{0x00, 0x00, 0x00, 0x00}, 16, []byte{0x00, 0x00}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Normalize(tc.input, tc.bitwidth)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestNormalizeTooWide(t *testing.T) {
	_, err := Normalize([]byte{0x01, 0x00}, 8)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = Normalize([]byte{0x08}, 3)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestNormalizeInvalidBitwidth(t *testing.T) {
	for _, bitwidth := range []int{0, -1} {
		_, err := Normalize([]byte{0x00}, bitwidth)
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := [][]byte{
		{0x00, 0x00, 0x2a},
		{0xff},
		{0x00},
	}
	for _, input := range inputs {
		once, err := Normalize(input, 16)
		require.NoError(t, err)
		twice, err := Normalize(once, 16)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{"strips leading zeros", []byte{0x00, 0x00, 0x2a}, []byte{0x2a}},
		{"keeps last zero byte", []byte{0x00, 0x00}, []byte{0x00}},
		{"no leading zeros", []byte{0x2a, 0x00}, []byte{0x2a, 0x00}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Canonical(tc.input))
		})
	}
}

func TestFromUint64(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		bitwidth int
		expected []byte
	}{
		{"8 bit", 0x11, 8, []byte{0x11}},
		{"16 bit", 0x1122, 16, []byte{0x11, 0x22}},
		{"24 bit", 0x112233, 24, []byte{0x11, 0x22, 0x33}},
		{"32 bit", 0x11223344, 32, []byte{0x11, 0x22, 0x33, 0x44}},
		{"64 bit", 0x1122334455667788, 64, []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}},
		{"partial byte", 0x05, 3, []byte{0x05}},
		{"zero pads", 0x01, 24, []byte{0x00, 0x00, 0x01}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := FromUint64(tc.value, tc.bitwidth)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestFromUint64Invalid(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		bitwidth int
	}{
		{"zero bitwidth", 1, 0},
		{"bitwidth above 64", 1, 65},
		{"value too wide", 0x100, 8},
		{"value too wide for partial byte", 0x08, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromUint64(tc.value, tc.bitwidth)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestToUint64(t *testing.T) {
	value, err := ToUint64([]byte{0x11, 0x22}, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1122), value)

	// Leading zero bytes are normalized away.
	value, err = ToUint64([]byte{0x00, 0x00, 0x42}, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x42), value)
}

func TestToUint64Invalid(t *testing.T) {
	_, err := ToUint64(make([]byte, 9), 72)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = ToUint64([]byte{0x01, 0x00}, 8)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUintRoundTrip(t *testing.T) {
	for _, bitwidth := range []int{1, 3, 8, 13, 16, 24, 32, 48, 63, 64} {
		for _, value := range []uint64{0, 1} {
			b, err := FromUint64(value, bitwidth)
			require.NoError(t, err)
			back, err := ToUint64(b, bitwidth)
			require.NoError(t, err)
			assert.Equal(t, value, back, "bitwidth %d value %d", bitwidth, value)
		}
	}

	for _, expected := range []uint64{0x11, 0x1122, 0x11223344, 0x1122334455667788} {
		bitwidth := SignificantBits([]byte{byte(expected >> 56), byte(expected >> 48), byte(expected >> 40), byte(expected >> 32), byte(expected >> 24), byte(expected >> 16), byte(expected >> 8), byte(expected)})
		b, err := FromUint64(expected, bitwidth)
		require.NoError(t, err)
		value, err := ToUint64(b, bitwidth)
		require.NoError(t, err)
		assert.Equal(t, expected, value)
	}
}

func TestIsAllZeros(t *testing.T) {
	assert.True(t, IsAllZeros(nil))
	assert.True(t, IsAllZeros([]byte{0x00, 0x00}))
	assert.False(t, IsAllZeros([]byte{0x00, 0x01}))
}

func TestIntersect(t *testing.T) {
	out, err := Intersect([]byte{0xf0, 0x0f}, []byte{0xff, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf0, 0x00}, out)

	_, err = Intersect([]byte{0xff}, []byte{0xff, 0x00})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestPrefixMask(t *testing.T) {
	tests := []struct {
		name      string
		prefixLen int
		bitwidth  int
		expected  []byte
	}{
		{"full ipv4 mask", 32, 32, []byte{0xff, 0xff, 0xff, 0xff}},
		{"ipv4 slash 24", 24, 32, []byte{0xff, 0xff, 0xff, 0x00}},
		{"ipv4 slash 9", 9, 32, []byte{0xff, 0x80, 0x00, 0x00}},
		{"zero prefix", 0, 32, []byte{0x00, 0x00, 0x00, 0x00}},
		{"partial leading byte full", 12, 12, []byte{0x0f, 0xff}},
		{"partial leading byte short", 3, 12, []byte{0x0e, 0x00}},
		{"prefix within leading byte", 2, 12, []byte{0x0c, 0x00}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := PrefixMask(tc.prefixLen, tc.bitwidth)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestPrefixMaskInvalid(t *testing.T) {
	_, err := PrefixMask(33, 32)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = PrefixMask(-1, 32)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
