package main

import (
	"encoding/hex"
	"fmt"

	"github.com/bitcoinecho/node/pkg/bitcoin"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <sec-pubkey-hex> <sighash-hex> <der-sig-hex>",
	Short: "Verify a DER-encoded ECDSA signature against a pubkey and sighash",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubBytes, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("decode pubkey: %w", err)
		}
		pub, err := bitcoin.ParseSEC(pubBytes)
		if err != nil {
			return fmt.Errorf("parse pubkey: %w", err)
		}

		hash, err := hex.DecodeString(args[1])
		if err != nil {
			return fmt.Errorf("decode sighash: %w", err)
		}

		sigBytes, err := hex.DecodeString(args[2])
		if err != nil {
			return fmt.Errorf("decode signature: %w", err)
		}
		sig, err := bitcoin.ParseDER(sigBytes)
		if err != nil {
			return fmt.Errorf("parse signature: %w", err)
		}

		if bitcoin.Verify(pub, hash, sig) {
			fmt.Println("valid")
			return nil
		}
		fmt.Println("invalid")
		return fmt.Errorf("signature does not verify: %w", bitcoin.ErrInvalidSig)
	},
}
