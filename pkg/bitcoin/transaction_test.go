package bitcoin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTx() *Transaction {
	return NewTransaction(1, []TxInput{
		{
			PreviousOutput: OutPoint{Hash: DoubleSHA256([]byte("prev")), Index: 0},
			ScriptSig:      []byte{},
			Sequence:       0xffffffff,
		},
	}, []TxOutput{
		{Value: 5000, ScriptPubKey: NewP2PKHScript(Hash160Bytes([]byte("recipient")))},
	}, 0)
}

func TestTransaction_SerializeDeserializeRoundTrip(t *testing.T) {
	tx := sampleTx()
	raw, err := tx.Serialize()
	require.NoError(t, err)

	got, err := DeserializeTransaction(raw)
	require.NoError(t, err)
	assert.Equal(t, tx.Version, got.Version)
	assert.Equal(t, tx.LockTime, got.LockTime)
	require.Len(t, got.Inputs, 1)
	assert.Equal(t, tx.Inputs[0].PreviousOutput.Hash, got.Inputs[0].PreviousOutput.Hash)
	require.Len(t, got.Outputs, 1)
	assert.Equal(t, tx.Outputs[0].Value, got.Outputs[0].Value)
}

func TestTransaction_WitnessRoundTrip(t *testing.T) {
	tx := sampleTx()
	tx.Witnesses = []TxWitness{{Stack: [][]byte{[]byte("sig"), []byte("pubkey")}}}

	raw, err := tx.Serialize()
	require.NoError(t, err)
	assert.True(t, tx.HasWitness())

	got, err := DeserializeTransaction(raw)
	require.NoError(t, err)
	require.True(t, got.HasWitness())
	require.Len(t, got.Witnesses, 1)
	assert.Equal(t, tx.Witnesses[0].Stack, got.Witnesses[0].Stack)
}

func TestTransaction_HashExcludesWitness(t *testing.T) {
	tx := sampleTx()
	plainHash := tx.Hash()

	tx.Witnesses = []TxWitness{{Stack: [][]byte{[]byte("sig")}}}
	assert.Equal(t, plainHash, tx.Hash())
	assert.NotEqual(t, tx.Hash(), tx.WitnessHash())
}

func TestTransaction_IsCoinbase(t *testing.T) {
	tx := NewTransaction(1, []TxInput{
		{PreviousOutput: OutPoint{Hash: ZeroHash, Index: 0xffffffff}},
	}, []TxOutput{{Value: 5000000000}}, 0)
	assert.True(t, tx.IsCoinbase())
}

func TestTransaction_SignAndVerifyP2PKH(t *testing.T) {
	pk, err := NewPrivateKey(big.NewInt(424242))
	require.NoError(t, err)
	pub := pk.PublicKey()
	prevScript := NewP2PKHScript(pub.Hash160(true))

	tx := NewTransaction(1, []TxInput{
		{PreviousOutput: OutPoint{Hash: DoubleSHA256([]byte("funding")), Index: 0}, Sequence: 0xffffffff},
	}, []TxOutput{
		{Value: 1000, ScriptPubKey: NewP2PKHScript(Hash160Bytes([]byte("someone else")))},
	}, 0)

	require.NoError(t, tx.SignP2PKHInput(0, pk, prevScript, true))

	prevOuts := []TxOutput{{Value: 2000, ScriptPubKey: prevScript}}
	ok, err := tx.VerifyP2PKHInput(0, prevOuts)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTransaction_VerifyFailsOnTamperedOutput(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(13579))
	pub := pk.PublicKey()
	prevScript := NewP2PKHScript(pub.Hash160(true))

	tx := NewTransaction(1, []TxInput{
		{PreviousOutput: OutPoint{Hash: DoubleSHA256([]byte("funding")), Index: 0}, Sequence: 0xffffffff},
	}, []TxOutput{
		{Value: 1000, ScriptPubKey: NewP2PKHScript(Hash160Bytes([]byte("someone else")))},
	}, 0)
	require.NoError(t, tx.SignP2PKHInput(0, pk, prevScript, true))

	tx.Outputs[0].Value = 999999 // mutate after signing, also breaks the ECDSA signature

	prevOuts := []TxOutput{{Value: 2000, ScriptPubKey: prevScript}}
	ok, err := tx.VerifyP2PKHInput(0, prevOuts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxInvalid)
	assert.False(t, ok)
}

func TestTransaction_VerifyFailsOnOutputExceedingInputAmount(t *testing.T) {
	pk, _ := NewPrivateKey(big.NewInt(24680))
	pub := pk.PublicKey()
	prevScript := NewP2PKHScript(pub.Hash160(true))

	tx := NewTransaction(1, []TxInput{
		{PreviousOutput: OutPoint{Hash: DoubleSHA256([]byte("funding")), Index: 0}, Sequence: 0xffffffff},
	}, []TxOutput{
		{Value: 1000, ScriptPubKey: NewP2PKHScript(Hash160Bytes([]byte("someone else")))},
	}, 0)
	require.NoError(t, tx.SignP2PKHInput(0, pk, prevScript, true))

	// prevOuts carries less value than the tx already spends; the signature
	// over the untouched outputs still verifies, so only the amount
	// invariant can catch this.
	prevOuts := []TxOutput{{Value: 500, ScriptPubKey: prevScript}}
	ok, err := tx.VerifyP2PKHInput(0, prevOuts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxInvalid)
	assert.False(t, ok)
}

func TestTransaction_FeeComputation(t *testing.T) {
	tx := sampleTx()
	fee, err := tx.Fee([]uint64{6000})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), fee)
}

func TestTransaction_FeeRejectsMismatchedInputCount(t *testing.T) {
	tx := sampleTx()
	_, err := tx.Fee([]uint64{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxInvalid)
}

func TestTransaction_ValidateRejectsDuplicateInputs(t *testing.T) {
	out := OutPoint{Hash: DoubleSHA256([]byte("x")), Index: 0}
	tx := NewTransaction(1, []TxInput{
		{PreviousOutput: out},
		{PreviousOutput: out},
	}, []TxOutput{{Value: 1}}, 0)

	err := tx.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxInvalid)
}

func TestOutPoint_IsNull(t *testing.T) {
	null := OutPoint{Hash: ZeroHash, Index: 0xffffffff}
	assert.True(t, null.IsNull())
}
