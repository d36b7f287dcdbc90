package explorer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, 2*time.Second, zerolog.Nop())
	return client, server.Close
}

func TestClient_GetTxHex(t *testing.T) {
	client, closeFn := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tx/abcd/hex", r.URL.Path)
		w.Write([]byte("deadbeef\n"))
	})
	defer closeFn()

	hex, err := client.GetTxHex(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", hex)
}

func TestClient_GetAddressTxs(t *testing.T) {
	client, closeFn := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address/1A1zP1/txs", r.URL.Path)
		w.Write([]byte(`[{"txid":"aa","status":{"confirmed":true,"block_height":100}}]`))
	})
	defer closeFn()

	txs, err := client.GetAddressTxs(context.Background(), "1A1zP1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "aa", txs[0].TxID)
	assert.True(t, txs[0].Status.Confirmed)
	assert.Equal(t, int64(100), txs[0].Status.BlockHeight)
}

func TestClient_GetBlockHeaderHex(t *testing.T) {
	client, closeFn := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/block/000/header", r.URL.Path)
		w.Write([]byte("cafebabe"))
	})
	defer closeFn()

	got, err := client.GetBlockHeaderHex(context.Background(), "000")
	require.NoError(t, err)
	assert.Equal(t, "cafebabe", got)
}

func TestClient_GetBlockTxids(t *testing.T) {
	client, closeFn := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["aa","bb","cc"]`))
	})
	defer closeFn()

	got, err := client.GetBlockTxids(context.Background(), "000")
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "bb", "cc"}, got)
}

func TestClient_BroadcastTx(t *testing.T) {
	client, closeFn := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tx", r.URL.Path)
		w.Write([]byte("newtxid123"))
	})
	defer closeFn()

	txid, err := client.BroadcastTx(context.Background(), "0100...")
	require.NoError(t, err)
	assert.Equal(t, "newtxid123", txid)
}

func TestClient_GetTxHex_NonOKStatusIsError(t *testing.T) {
	client, closeFn := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	})
	defer closeFn()

	_, err := client.GetTxHex(context.Background(), "missing")
	require.Error(t, err)
}
