package main

import (
	"fmt"

	"github.com/bitcoinecho/node/pkg/bitcoin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var keygenCompressed bool

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new random private key and its P2PKH address",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := addressVersion(viper.GetString("network"))
		if err != nil {
			return err
		}

		pk, err := bitcoin.RandomPrivateKey()
		if err != nil {
			return fmt.Errorf("generate private key: %w", err)
		}
		pub := pk.PublicKey()

		fmt.Printf("wif:     %s\n", pk.WIF(version, keygenCompressed))
		fmt.Printf("address: %s\n", pub.Address(version, keygenCompressed))
		logger.Debug().Str("network", viper.GetString("network")).Msg("generated key pair")
		return nil
	},
}

func init() {
	keygenCmd.Flags().BoolVar(&keygenCompressed, "compressed", true, "derive a compressed public key")
}
