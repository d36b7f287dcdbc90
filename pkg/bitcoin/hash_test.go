package bitcoin

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

func TestSHA256_NISTVector(t *testing.T) {
	got := SHA256([]byte("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(got[:]))
}

func TestDoubleSHA256_MatchesDefinition(t *testing.T) {
	data := []byte("bitcoinecho core")
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	got := DoubleSHA256(data)
	assert.Equal(t, second[:], got.Bytes())
}

func TestHash256_ReversedRoundTrips(t *testing.T) {
	h := DoubleSHA256([]byte("round trip me"))
	assert.Equal(t, h, h.Reversed().Reversed())
	assert.NotEqual(t, h, h.Reversed())
}

func TestHash256_FromBytesRejectsWrongLength(t *testing.T) {
	_, err := NewHash256FromBytes(make([]byte, 31))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEncoding)
}

func TestHash256_FromStringHexRoundTrip(t *testing.T) {
	h := DoubleSHA256([]byte("roundtrip"))
	got, err := NewHash256FromString(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHash160Bytes_MatchesDefinition(t *testing.T) {
	data := []byte("bitcoinecho core")
	sha := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sha[:])
	want := r.Sum(nil)

	got := Hash160Bytes(data)
	assert.Equal(t, want, got.Bytes())
}

func TestHash160_FromBytesRejectsWrongLength(t *testing.T) {
	_, err := NewHash160FromBytes(make([]byte, 19))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEncoding)
}
