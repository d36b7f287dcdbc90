package main

import (
	"context"
	"fmt"

	"github.com/bitcoinecho/node/pkg/explorer"
	"github.com/spf13/cobra"
)

var fetchTxCmd = &cobra.Command{
	Use:   "fetch-tx <txid>",
	Short: "Fetch a transaction's raw hex from the configured block explorer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := explorer.NewClient(explorerBaseURL(), explorerTimeout(), logger)

		raw, err := client.GetTxHex(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch tx: %w", err)
		}
		fmt.Println(raw)
		return nil
	},
}
