package bitcoin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecp256k1_GeneratorIsOnCurve(t *testing.T) {
	_, err := NewPoint(Secp256k1, G.X, G.Y)
	require.NoError(t, err)
}

func TestSecp256k1_OrderTimesGIsInfinity(t *testing.T) {
	result := ScalarMul(secp256k1N, G)
	assert.True(t, result.Infinity)
}

func TestSecp256k1_ScalarMulMatchesRepeatedAdd(t *testing.T) {
	doubled, err := G.Add(G)
	require.NoError(t, err)
	assert.True(t, ScalarMul(big.NewInt(2), G).Equal(doubled))

	tripled, err := doubled.Add(G)
	require.NoError(t, err)
	assert.True(t, ScalarMul(big.NewInt(3), G).Equal(tripled))
}

func TestS256Point_RejectsOffCurve(t *testing.T) {
	_, err := S256Point(G.X.Num, new(big.Int).Add(G.Y.Num, big.NewInt(1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadPoint)
}
