package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bitcoinecho/node/pkg/bitcoin"
	"github.com/spf13/cobra"
)

type decodedInput struct {
	PrevTxID  string `json:"prev_txid"`
	PrevIndex uint32 `json:"prev_index"`
	ScriptSig string `json:"script_sig"`
	Sequence  uint32 `json:"sequence"`
}

type decodedOutput struct {
	Value        uint64 `json:"value"`
	ScriptPubKey string `json:"script_pubkey"`
}

type decodedTx struct {
	TxID     string          `json:"txid"`
	Version  uint32          `json:"version"`
	LockTime uint32          `json:"locktime"`
	Inputs   []decodedInput  `json:"inputs"`
	Outputs  []decodedOutput `json:"outputs"`
	Witness  bool            `json:"has_witness"`
}

var decodeTxCmd = &cobra.Command{
	Use:   "decode-tx <raw-hex>",
	Short: "Decode a raw transaction and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}

		tx, err := bitcoin.DeserializeTransaction(raw)
		if err != nil {
			return fmt.Errorf("decode transaction: %w", err)
		}

		out := decodedTx{
			TxID:     tx.TxID(),
			Version:  tx.Version,
			LockTime: tx.LockTime,
			Witness:  tx.HasWitness(),
		}
		for _, in := range tx.Inputs {
			out.Inputs = append(out.Inputs, decodedInput{
				PrevTxID:  in.PreviousOutput.Hash.String(),
				PrevIndex: in.PreviousOutput.Index,
				ScriptSig: hex.EncodeToString(in.ScriptSig),
				Sequence:  in.Sequence,
			})
		}
		for _, o := range tx.Outputs {
			out.Outputs = append(out.Outputs, decodedOutput{
				Value:        o.Value,
				ScriptPubKey: hex.EncodeToString(o.ScriptPubKey),
			})
		}

		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	},
}
