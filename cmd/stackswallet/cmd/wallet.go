package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacksline/stacks-wallet/internal/config"
)

var createOpt struct {
	Label string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "create a new encrypted wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := config.PromptForPassword("Choose wallet password: ")
		if err != nil {
			return err
		}

		resp, err := getService().CreateWallet(password, createOpt.Label)
		if err != nil {
			return err
		}
		return printJson(cmd, resp)
	},
}

var importOpt struct {
	Label string
}

var importCmd = &cobra.Command{
	Use:   "import <mnemonic-or-hex-key>",
	Short: "import a wallet from a mnemonic or raw private key",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// a mnemonic arrives as multiple args unless quoted
		secret := args[0]
		for _, a := range args[1:] {
			secret += " " + a
		}

		password, err := config.PromptForPassword("Choose wallet password: ")
		if err != nil {
			return err
		}

		resp, err := getService().ImportWallet(secret, password, importOpt.Label)
		if err != nil {
			return err
		}
		return printJson(cmd, resp)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := getService().ListWallets()
		if err != nil {
			return err
		}
		return printJson(cmd, idx)
	},
}

var accountsOpt struct {
	WalletID string
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "list accounts of a wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := getService().ListAccounts(accountsOpt.WalletID)
		if err != nil {
			return err
		}
		return printJson(cmd, accounts)
	},
}

var exportOpt struct {
	WalletID string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export a wallet's mnemonic or raw key",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := config.PromptForPassword("Wallet password: ")
		if err != nil {
			return err
		}

		resp, err := getService().ExportWallet(exportOpt.WalletID, password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Keep this secret safe. Anyone holding it controls the wallet.")
		return printJson(cmd, resp)
	},
}

var balanceOpt struct {
	Address string
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "show STX balance for an address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if balanceOpt.Address == "" {
			return fmt.Errorf("--address is required (CLI sessions start locked)")
		}
		resp, err := getService().GetBalance(balanceOpt.Address)
		if err != nil {
			return err
		}
		return printJson(cmd, resp)
	},
}

func init() {
	rootCmd.AddCommand(createCmd, importCmd, listCmd, accountsCmd, exportCmd, balanceCmd)

	createCmd.Flags().StringVar(&createOpt.Label, "label", "", "wallet label")
	importCmd.Flags().StringVar(&importOpt.Label, "label", "", "wallet label")
	accountsCmd.Flags().StringVar(&accountsOpt.WalletID, "wallet", "", "wallet id (defaults to active wallet)")
	exportCmd.Flags().StringVar(&exportOpt.WalletID, "wallet", "", "wallet id (defaults to active wallet)")
	balanceCmd.Flags().StringVar(&balanceOpt.Address, "address", "", "Stacks address to query")
}
