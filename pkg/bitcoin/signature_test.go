package bitcoin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_ThenVerify(t *testing.T) {
	pk, err := NewPrivateKey(big.NewInt(987654321))
	require.NoError(t, err)
	hash := DoubleSHA256([]byte("message to sign"))

	sig, err := Sign(pk, hash.Bytes())
	require.NoError(t, err)
	assert.True(t, Verify(pk.PublicKey(), hash.Bytes(), sig))
}

func TestSign_IsDeterministic(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(42))
	hash := DoubleSHA256([]byte("deterministic"))

	sig1, err := Sign(pk, hash.Bytes())
	require.NoError(t, err)
	sig2, err := Sign(pk, hash.Bytes())
	require.NoError(t, err)

	assert.Equal(t, sig1.R, sig2.R)
	assert.Equal(t, sig1.S, sig2.S)
}

func TestSign_ProducesLowS(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(7777))
	hash := DoubleSHA256([]byte("low s check"))

	sig, err := Sign(pk, hash.Bytes())
	require.NoError(t, err)
	assert.True(t, sig.S.Cmp(secp256k1HalfN) <= 0)
}

func TestVerify_TamperedMessageFails(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(24680))
	hash := DoubleSHA256([]byte("original"))

	sig, err := Sign(pk, hash.Bytes())
	require.NoError(t, err)

	tamperedHash := DoubleSHA256([]byte("tampered"))
	assert.False(t, Verify(pk.PublicKey(), tamperedHash.Bytes(), sig))
}

func TestVerify_WrongKeyFails(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(111))
	other, _ := NewPrivateKey(big.NewInt(222))
	hash := DoubleSHA256([]byte("message"))

	sig, err := Sign(pk, hash.Bytes())
	require.NoError(t, err)
	assert.False(t, Verify(other.PublicKey(), hash.Bytes(), sig))
}

func TestDER_RoundTrip(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(55555))
	hash := DoubleSHA256([]byte("der roundtrip"))

	sig, err := Sign(pk, hash.Bytes())
	require.NoError(t, err)

	der := sig.DER()
	decoded, err := ParseDER(der)
	require.NoError(t, err)
	assert.Equal(t, sig.R, decoded.R)
	assert.Equal(t, sig.S, decoded.S)
}

func TestParseDER_RejectsTruncated(t *testing.T) {
	_, err := ParseDER([]byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEncoding)
}

func TestParseDER_RejectsWrongTag(t *testing.T) {
	_, err := ParseDER([]byte{0x31, 0x00})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEncoding)
}

func TestSignWithK_IsReproducible(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(9))
	hash := DoubleSHA256([]byte("fixed k"))
	k := big.NewInt(123456789)

	sig1, err := SignWithK(pk, hash.Bytes(), k)
	require.NoError(t, err)
	sig2, err := SignWithK(pk, hash.Bytes(), k)
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)
	assert.True(t, Verify(pk.PublicKey(), hash.Bytes(), sig1))
}
