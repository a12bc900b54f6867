package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacksline/stacks-wallet/internal/config"
	"github.com/stacksline/stacks-wallet/internal/crypto"
	"github.com/stacksline/stacks-wallet/internal/session"
	"github.com/stacksline/stacks-wallet/internal/store"
	"github.com/stacksline/stacks-wallet/stacks"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackswallet",
	Short: "local encrypted Stacks wallet",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Init()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// getService builds a wallet service over the configured local stores.
// Each CLI invocation is its own process, so the session it carries always
// starts locked.
func getService() *stacks.Service {
	index := store.NewIndexStore(config.GetIndexPath())
	keystores := store.NewKeystoreStore(config.GetKeystoreDir())
	sess := session.New(
		index,
		keystores,
		config.GetNetwork(),
		time.Duration(config.GetAutoLockMinutes())*time.Minute,
		time.Now,
	)
	return stacks.NewService(index, keystores, sess, config.GetNetwork(), crypto.DefaultParams)
}

func printJson(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(b))
	return nil
}
