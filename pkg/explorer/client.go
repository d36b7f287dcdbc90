// Package explorer is a thin HTTP client for a block/transaction explorer
// API, consumed at the boundary of the core bitcoin package. It never
// participates in the core's arithmetic or wire decoding; it only moves
// bytes in and out.
package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client fetches transactions, addresses and block headers from a
// block-explorer HTTP API, and broadcasts signed transactions to it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient returns an explorer Client rooted at baseURL (no trailing
// slash expected; one is trimmed if present).
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "explorer").Logger(),
	}
}

// AddressTx is one entry of the JSON array returned by GET
// /address/{addr}/txs.
type AddressTx struct {
	TxID   string `json:"txid"`
	Status struct {
		Confirmed   bool   `json:"confirmed"`
		BlockHeight int64  `json:"block_height"`
		BlockHash   string `json:"block_hash"`
	} `json:"status"`
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("explorer: build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observeRequest(path, time.Since(start), err)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("explorer request failed")
		return nil, fmt.Errorf("explorer: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("explorer: read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("explorer returned non-200")
		return nil, fmt.Errorf("explorer: GET %s: status %d: %s", path, resp.StatusCode, string(body))
	}

	c.logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("explorer request succeeded")
	return body, nil
}

// GetTxHex fetches the raw hex-encoded transaction for txid.
func (c *Client) GetTxHex(ctx context.Context, txid string) (string, error) {
	body, err := c.get(ctx, "/tx/"+txid+"/hex")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// GetAddressTxs fetches the transaction history for an address.
func (c *Client) GetAddressTxs(ctx context.Context, address string) ([]AddressTx, error) {
	body, err := c.get(ctx, "/address/"+address+"/txs")
	if err != nil {
		return nil, err
	}
	var txs []AddressTx
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, fmt.Errorf("explorer: decode address txs: %w", err)
	}
	return txs, nil
}

// GetBlockHeaderHex fetches the raw 80-byte hex-encoded header for a block
// identified by hash or height string.
func (c *Client) GetBlockHeaderHex(ctx context.Context, blockID string) (string, error) {
	body, err := c.get(ctx, "/block/"+blockID+"/header")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// GetBlockTxids fetches the ordered list of transaction IDs in a block.
func (c *Client) GetBlockTxids(ctx context.Context, blockID string) ([]string, error) {
	body, err := c.get(ctx, "/block/"+blockID+"/txids")
	if err != nil {
		return nil, err
	}
	var txids []string
	if err := json.Unmarshal(body, &txids); err != nil {
		return nil, fmt.Errorf("explorer: decode block txids: %w", err)
	}
	return txids, nil
}

// BroadcastTx submits a raw hex-encoded signed transaction and returns the
// resulting txid.
func (c *Client) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	url := c.baseURL + "/tx"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(rawTxHex))
	if err != nil {
		return "", fmt.Errorf("explorer: build broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observeRequest("/tx", time.Since(start), err)
	if err != nil {
		c.logger.Error().Err(err).Msg("broadcast request failed")
		return "", fmt.Errorf("explorer: POST /tx: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("explorer: read broadcast response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("broadcast rejected")
		return "", fmt.Errorf("explorer: POST /tx: status %d: %s", resp.StatusCode, string(body))
	}

	txid := strings.TrimSpace(string(body))
	c.logger.Info().Str("txid", txid).Msg("broadcast accepted")
	return txid, nil
}
