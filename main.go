package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "TXCHAIN"

var (
	cfgFile string
	logger  = logrus.New()
)

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "txchain",
	Short: "A single node ledger of signed value transfers",
	Long: `txchain keeps a chain of signed transfers and derives account balances from it.

Every transfer names the previous transfer it builds on and is signed with the
sender's secp256k1 key; the sender's address is recovered from the signature.

  txchain serve --genesis-file configs/genesis.json
  txchain send --key <hex> --recipient 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 --amount 10`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			err := viper.ReadInConfig()
			if err != nil {
				return fmt.Errorf("read config file: %w", err)
			}
		}
		viper.SetEnvPrefix(envPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		viper.AutomaticEnv()

		err := viper.BindPFlags(cmd.Flags())
		if err != nil {
			return fmt.Errorf("bind flags: %w", err)
		}

		return setupLogger(logger, viper.GetBool("verbose"), viper.GetString("log-format"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional YAML config file, flags and TXCHAIN_* env vars take precedence")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(balanceCmd)
}

func setupLogger(logger *logrus.Logger, verbose bool, format string) error {
	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q, expected text or json", format)
	}

	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return nil
}
