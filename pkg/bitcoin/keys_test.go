package bitcoin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) PrivateKey {
	t.Helper()
	pk, err := NewPrivateKey(big.NewInt(12345))
	require.NoError(t, err)
	return pk
}

func TestPrivateKey_RangeValidation(t *testing.T) {
	_, err := NewPrivateKey(big.NewInt(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)

	_, err = NewPrivateKey(secp256k1N)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)
}

func TestRandomPrivateKey_InRange(t *testing.T) {
	for i := 0; i < 20; i++ {
		pk, err := RandomPrivateKey()
		require.NoError(t, err)
		assert.True(t, pk.Secret.Sign() > 0)
		assert.True(t, pk.Secret.Cmp(secp256k1N) < 0)
	}
}

func TestSEC_CompressedRoundTrip(t *testing.T) {
	pub := testKey(t).PublicKey()
	enc := pub.SEC(true)
	assert.Len(t, enc, 33)

	decoded, err := ParseSEC(enc)
	require.NoError(t, err)
	assert.True(t, decoded.Point.Equal(pub.Point))
}

func TestSEC_UncompressedRoundTrip(t *testing.T) {
	pub := testKey(t).PublicKey()
	enc := pub.SEC(false)
	assert.Len(t, enc, 65)

	decoded, err := ParseSEC(enc)
	require.NoError(t, err)
	assert.True(t, decoded.Point.Equal(pub.Point))
}

func TestParseSEC_RejectsBadPrefix(t *testing.T) {
	_, err := ParseSEC([]byte{0x05, 0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadEncoding)
}

func TestAddress_MainnetAndTestnetDiffer(t *testing.T) {
	pub := testKey(t).PublicKey()
	main := pub.Address(MainnetAddress, true)
	test := pub.Address(TestnetAddress, true)
	assert.NotEqual(t, main, test)

	h160, version, err := DecodeAddress(main)
	require.NoError(t, err)
	assert.Equal(t, MainnetAddress, version)
	assert.Equal(t, pub.Hash160(true), h160)
}

func TestWIF_RoundTrip(t *testing.T) {
	pk := testKey(t)

	for _, compressed := range []bool{true, false} {
		wif := pk.WIF(MainnetAddress, compressed)
		decoded, decodedCompressed, err := ImportWIF(wif)
		require.NoError(t, err)
		assert.Equal(t, compressed, decodedCompressed)
		assert.Equal(t, pk.Secret, decoded.Secret)
	}
}

func TestImportWIF_RejectsBadChecksum(t *testing.T) {
	wif := testKey(t).WIF(MainnetAddress, true)
	tampered := []byte(wif)
	tampered[len(tampered)-1]++
	_, _, err := ImportWIF(string(tampered))
	require.Error(t, err)
}
