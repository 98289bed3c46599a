package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hedisam/txchain/internal/client"
	"github.com/hedisam/txchain/internal/identity"
)

const defaultNodeAddr = "http://localhost:3042"

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign a transfer linked to the node's latest transaction and submit it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := identity.ParsePrivateKey(viper.GetString("key"))
		if err != nil {
			return fmt.Errorf("invalid --key: %w", err)
		}
		recipient := viper.GetString("recipient")
		_, err = identity.ParseAddress(recipient)
		if err != nil {
			return fmt.Errorf("invalid --recipient: %w", err)
		}
		amount := viper.GetInt64("amount")
		if amount < 0 {
			return fmt.Errorf("invalid --amount: %d is negative", amount)
		}

		c := client.New(logger, viper.GetString("node"))
		r, balance, err := c.Send(cmd.Context(), key, recipient, amount)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "transaction %d accepted, sender %s balance: %d\n",
			r.ID, identity.AddressFromPubKey(key.PubKey()), balance)
		return err
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance of an address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(logger, viper.GetString("node"))
		balance, err := c.Balance(cmd.Context(), viper.GetString("address"))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), balance)
		return err
	},
}

func init() {
	sendCmd.Flags().String("node", defaultNodeAddr, "Base URL of the txchain node")
	sendCmd.Flags().String("key", "", "Hex encoded secp256k1 private key of the sender")
	sendCmd.Flags().String("recipient", "", "Recipient address")
	sendCmd.Flags().Int64("amount", 0, "Amount to transfer")

	balanceCmd.Flags().String("node", defaultNodeAddr, "Base URL of the txchain node")
	balanceCmd.Flags().String("address", "", "Address to look up")
}
