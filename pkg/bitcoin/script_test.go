package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePush_Sizes(t *testing.T) {
	small, err := EncodePush(make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, byte(10), small[0])

	medium, err := EncodePush(make([]byte, 200))
	require.NoError(t, err)
	assert.Equal(t, byte(OP_PUSHDATA1), medium[0])

	large, err := EncodePush(make([]byte, 500))
	require.NoError(t, err)
	assert.Equal(t, byte(OP_PUSHDATA2), large[0])
}

func TestEncodePush_RejectsOversize(t *testing.T) {
	_, err := EncodePush(make([]byte, MaxScriptElementSize+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScriptTooLarge)
}

func TestParseSerializeScript_RoundTrip(t *testing.T) {
	cmds := []Command{
		{Op: OP_DUP},
		{Op: OP_HASH160},
		{Data: make([]byte, 20)},
		{Op: OP_EQUALVERIFY},
		{Op: OP_CHECKSIG},
	}
	raw, err := SerializeScript(cmds)
	require.NoError(t, err)

	parsed, err := ParseScript(raw)
	require.NoError(t, err)
	require.Len(t, parsed, len(cmds))
	for i, c := range cmds {
		assert.Equal(t, c.Op, parsed[i].Op)
		assert.Equal(t, c.Data, parsed[i].Data)
	}
}

func TestParseScript_PushData1RoundTrip(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}
	raw, err := SerializeScript([]Command{{Data: data}})
	require.NoError(t, err)

	parsed, err := ParseScript(raw)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, data, parsed[0].Data)
}

func TestNewP2PKHScript_RoundTrips(t *testing.T) {
	h, _ := NewHash160FromBytes(make([]byte, 20))
	script := NewP2PKHScript(h)

	assert.Equal(t, ScriptTypeP2PKH, script.AnalyzeScript())
	got, ok := script.P2PKHHash160()
	require.True(t, ok)
	assert.Equal(t, h, got)
}

func TestScriptAnalyze_P2SH(t *testing.T) {
	script := Script(append(append([]byte{byte(OP_HASH160), Hash160Size}, make([]byte, 20)...), byte(OP_EQUAL)))
	assert.Equal(t, ScriptTypeP2SH, script.AnalyzeScript())
}

func TestScriptEngine_DupHash160Equalverify(t *testing.T) {
	hash := Hash160Bytes([]byte("pubkey"))
	script := NewP2PKHScript(hash)

	engine := NewScriptEngine(nil, nil, 0, nil, ScriptFlagsNone)
	engine.stack = [][]byte{[]byte("pubkey")}
	engine.SetScript(script[:len(script)-1]) // drop the trailing OP_CHECKSIG for this probe

	ok, err := engine.Execute()
	require.NoError(t, err)
	assert.True(t, ok)
	stack := engine.GetStack()
	require.Len(t, stack, 1)
	assert.True(t, engine.isTrue(stack[0]))
}
