package main

import (
	"fmt"

	"github.com/bitcoinecho/node/pkg/bitcoin"
)

func addressVersion(network string) (bitcoin.AddressVersion, error) {
	switch network {
	case "mainnet":
		return bitcoin.MainnetAddress, nil
	case "testnet":
		return bitcoin.TestnetAddress, nil
	default:
		return 0, fmt.Errorf("unknown network %q, want mainnet or testnet", network)
	}
}
