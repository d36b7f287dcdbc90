package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeInt_RoundTrip(t *testing.T) {
	for _, endian := range []Endian{LittleEndian, BigEndian} {
		enc, err := EncodeInt(0x01020304, 4, endian)
		require.NoError(t, err)

		got, err := NewReader(enc).DecodeInt(4, endian)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x01020304), got)
	}
}

func TestEncodeInt_RejectsOverflow(t *testing.T) {
	_, err := EncodeInt(0x100, 1, LittleEndian)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)
}

func TestVarInt_RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000}
	for _, v := range cases {
		enc := EncodeVarInt(v)
		got, n, err := DecodeVarInt(enc)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(enc), n)
	}
}

func TestVarInt_Widths(t *testing.T) {
	assert.Len(t, EncodeVarInt(0xfc), 1)
	assert.Len(t, EncodeVarInt(0xfd), 3)
	assert.Len(t, EncodeVarInt(0xffff+1), 5)
	assert.Len(t, EncodeVarInt(0xffffffff+1), 9)
}

func TestReader_ReadBytesTruncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	_, err := r.ReadBytes(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReader_SeekRewinds(t *testing.T) {
	r := NewReader([]byte{0xaa, 0xbb, 0xcc})
	save := r.Pos()
	_, _ = r.ReadByte()
	r.Seek(save)
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xaa), b)
}
