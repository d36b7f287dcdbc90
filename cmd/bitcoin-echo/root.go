package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName    = "bitcoin-echo"
	appVersion = "0.1.0-dev"
)

var (
	cfgFile string
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A minimal Bitcoin key, signature and wire-format toolkit",
	Long: `bitcoin-echo derives keys and addresses, signs and verifies P2PKH
spends, decodes transactions and block headers, and fetches data from a
block explorer.`,
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.bitcoinecho.yaml)")
	rootCmd.PersistentFlags().String("explorer-url", "https://blockstream.info/testnet/api", "base URL of the block explorer API")
	rootCmd.PersistentFlags().String("network", "testnet", "network: mainnet or testnet")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "explorer HTTP request timeout")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	viper.BindPFlag("explorer-url", rootCmd.PersistentFlags().Lookup("explorer-url"))
	viper.BindPFlag("network", rootCmd.PersistentFlags().Lookup("network"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("explorer-url", "https://blockstream.info/testnet/api")
	viper.SetDefault("network", "testnet")
	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("log-level", "info")

	rootCmd.AddCommand(versionCmd, keygenCmd, addressCmd, signCmd, verifyCmd, decodeTxCmd, decodeHeaderCmd, fetchTxCmd)
}

// initConfig wires flag > env (BITCOINECHO_*) > config file > default,
// following the layering zcash-lightwalletd's cmd/root.go sets up for its
// own flags.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".bitcoinecho")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BITCOINECHO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("app", appName).Logger()
}

func explorerTimeout() time.Duration {
	return viper.GetDuration("timeout")
}

func explorerBaseURL() string {
	return viper.GetString("explorer-url")
}
