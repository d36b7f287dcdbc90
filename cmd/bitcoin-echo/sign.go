package main

import (
	"encoding/hex"
	"fmt"

	"github.com/bitcoinecho/node/pkg/bitcoin"
	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign <wif> <sighash-hex>",
	Short: "Sign a 32-byte sighash with a WIF private key, printing the DER+SIGHASH_ALL hex",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, _, err := bitcoin.ImportWIF(args[0])
		if err != nil {
			return fmt.Errorf("import WIF: %w", err)
		}

		hash, err := hex.DecodeString(args[1])
		if err != nil {
			return fmt.Errorf("decode sighash: %w", err)
		}

		sig, err := bitcoin.Sign(pk, hash)
		if err != nil {
			return fmt.Errorf("sign: %w", err)
		}

		der := append(sig.DER(), bitcoin.SighashAll)
		fmt.Printf("%x\n", der)
		return nil
	},
}
