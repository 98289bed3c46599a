package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hedisam/txchain/internal/identity"
	"github.com/hedisam/txchain/internal/ledger"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transaction offline and print it as JSON",
	Long: `Sign builds a transaction from the given fields, signs it and prints the record
ready to be posted to /send. Leave --prev-id empty to sign a genesis transaction.

  txchain sign --key <hex> --id 3 --prev-id 2 --recipient 0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC --amount 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := signRecord(
			viper.GetString("key"),
			viper.GetUint64("id"),
			viper.GetString("prev-id"),
			viper.GetString("recipient"),
			viper.GetInt64("amount"),
		)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	},
}

func init() {
	signCmd.Flags().String("key", "", "Hex encoded secp256k1 private key of the sender")
	signCmd.Flags().Uint64("id", 0, "Transaction id")
	signCmd.Flags().String("prev-id", "", "Id of the transaction this one builds on, empty for genesis")
	signCmd.Flags().String("recipient", "", "Recipient address")
	signCmd.Flags().Int64("amount", 0, "Amount to transfer")
}

func signRecord(hexKey string, id uint64, prevID, recipient string, amount int64) (ledger.Record, error) {
	key, err := identity.ParsePrivateKey(hexKey)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("invalid --key: %w", err)
	}

	_, err = identity.ParseAddress(recipient)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("invalid --recipient: %w", err)
	}
	if amount < 0 {
		return ledger.Record{}, fmt.Errorf("invalid --amount: %d is negative", amount)
	}

	r := ledger.Record{
		ID:        id,
		Recipient: recipient,
		Amount:    amount,
	}
	if prevID != "" {
		v, err := strconv.ParseUint(prevID, 10, 64)
		if err != nil {
			return ledger.Record{}, fmt.Errorf("invalid --prev-id: %w", err)
		}
		r.PrevID = ledger.Uint64(v)
	}

	return ledger.Sign(r, key)
}
