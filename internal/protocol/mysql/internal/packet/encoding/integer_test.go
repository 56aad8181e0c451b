package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedLengthInteger(t *testing.T) {
	testcases := []struct {
		name     string
		value    uint64
		byteSize int
		want     []byte
	}{
		{
			name:     "one byte",
			value:    0x2A,
			byteSize: 1,
			want:     []byte{0x2A},
		},
		{
			name:     "two bytes little endian",
			value:    0x0102,
			byteSize: 2,
			want:     []byte{0x02, 0x01},
		},
		{
			name:     "three bytes",
			value:    0x010203,
			byteSize: 3,
			want:     []byte{0x03, 0x02, 0x01},
		},
		{
			name:     "truncates high bytes",
			value:    0x11223344,
			byteSize: 2,
			want:     []byte{0x44, 0x33},
		},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FixedLengthInteger(tc.value, tc.byteSize))
		})
	}
}

func TestLengthEncodeInteger(t *testing.T) {
	testcases := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{
			name:  "single byte upper bound",
			value: 250,
			want:  []byte{0xFA},
		},
		{
			name:  "two byte lower bound",
			value: 251,
			want:  []byte{0xFC, 0xFB, 0x00},
		},
		{
			name:  "two byte upper bound",
			value: 65535,
			want:  []byte{0xFC, 0xFF, 0xFF},
		},
		{
			name:  "three byte lower bound",
			value: 65536,
			want:  []byte{0xFD, 0x00, 0x00, 0x01},
		},
		{
			name:  "three byte upper bound",
			value: 16777215,
			want:  []byte{0xFD, 0xFF, 0xFF, 0xFF},
		},
		{
			name:  "eight byte lower bound",
			value: 16777216,
			want:  []byte{0xFE, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
		},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LengthEncodeInteger(tc.value))
		})
	}
}

func TestLengthEncodeString(t *testing.T) {
	assert.Equal(t, []byte{0x03, 'a', 'b', 'c'}, LengthEncodeString("abc"))
	assert.Equal(t, []byte{0x00}, LengthEncodeString(""))
}

func TestNullTerminatedString(t *testing.T) {
	assert.Equal(t, []byte{'d', 'b', 0x00}, NullTerminatedString("db"))
	assert.Equal(t, []byte{0x00}, NullTerminatedString(""))
}
