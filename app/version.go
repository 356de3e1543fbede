package app

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/orkank/AppConfig/internal/web/middleware/apikey"
)

// Version is set at build time with -ldflags "-X github.com/orkank/AppConfig/app.Version=...".
var Version = "dev" //nolint:gochecknoglobals

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(versionCmd, hashKeyCmd)
}

var (
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	}

	hashKeyCmd = &cobra.Command{
		Use:   "hash-key <api key>",
		Short: "Print the argon2id hash of an admin api key for Admin.APIKeyHash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return errors.New("api key can not be empty")
			}

			hash, err := apikey.Hash(args[0])
			if err != nil {
				return err
			}

			cmd.Println(hash)

			return nil
		},
	}
)
