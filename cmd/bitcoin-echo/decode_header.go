package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bitcoinecho/node/pkg/bitcoin"
	"github.com/spf13/cobra"
)

type decodedHeader struct {
	Hash          string  `json:"hash"`
	Version       uint32  `json:"version"`
	PrevBlockHash string  `json:"prev_block_hash"`
	MerkleRoot    string  `json:"merkle_root"`
	Timestamp     uint32  `json:"timestamp"`
	Bits          uint32  `json:"bits"`
	Nonce         uint32  `json:"nonce"`
	Difficulty    float64 `json:"difficulty"`
	ValidPoW      bool    `json:"valid_proof_of_work"`
}

var decodeHeaderCmd = &cobra.Command{
	Use:   "decode-header <80-byte-hex>",
	Short: "Decode a block header and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}

		header, err := bitcoin.DeserializeBlockHeader(raw)
		if err != nil {
			return fmt.Errorf("decode header: %w", err)
		}

		out := decodedHeader{
			Hash:          header.Hash().String(),
			Version:       header.Version,
			PrevBlockHash: header.PrevBlockHash.String(),
			MerkleRoot:    header.MerkleRoot.String(),
			Timestamp:     header.Timestamp,
			Bits:          header.Bits,
			Nonce:         header.Nonce,
			Difficulty:    header.Difficulty(),
			ValidPoW:      header.CheckProofOfWork(),
		}

		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	},
}
