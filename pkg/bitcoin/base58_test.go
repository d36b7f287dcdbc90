package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase58_RoundTrip(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe}
	encoded := Base58Encode(payload)

	decoded, err := Base58Decode(encoded, len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestBase58_LeadingZerosBecomeOnes(t *testing.T) {
	encoded := Base58Encode([]byte{0x00, 0x00, 0x01})
	assert.Equal(t, byte('1'), encoded[0])
	assert.Equal(t, byte('1'), encoded[1])
}

func TestBase58Decode_RejectsInvalidCharacter(t *testing.T) {
	_, err := Base58Decode("0OIl", 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEncoding)
}

func TestBase58CheckEncode_DecodeRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0xde, 0xad, 0xbe, 0xef}
	encoded := Base58CheckEncode(payload)

	decoded, err := Base58CheckDecode(encoded, len(payload)+4)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestBase58CheckDecode_RejectsMutatedPayload(t *testing.T) {
	payload := []byte{0x00, 0xde, 0xad, 0xbe, 0xef}
	encoded := Base58CheckEncode(payload)

	mutated, err := Base58Decode(encoded, len(payload)+4)
	require.NoError(t, err)
	mutated[0] ^= 0xff
	remutated := Base58Encode(mutated)

	_, err = Base58CheckDecode(remutated, len(payload)+4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksumBad)
}
