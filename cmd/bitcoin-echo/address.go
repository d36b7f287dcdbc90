package main

import (
	"fmt"

	"github.com/bitcoinecho/node/pkg/bitcoin"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address <wif>",
	Short: "Derive the P2PKH address and SEC pubkey encoded by a WIF private key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, compressed, err := bitcoin.ImportWIF(args[0])
		if err != nil {
			return fmt.Errorf("import WIF: %w", err)
		}

		pub := pk.PublicKey()

		fmt.Printf("pubkey:  %x\n", pub.SEC(compressed))
		fmt.Printf("mainnet: %s\n", pub.Address(bitcoin.MainnetAddress, compressed))
		fmt.Printf("testnet: %s\n", pub.Address(bitcoin.TestnetAddress, compressed))
		return nil
	},
}
