package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/switchgames/site/auth"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash a password for configuration",
	Long: `Prints the sha256 digest to use as SWG_ADMIN_PASSWORD_HASH, plus an
argon2id hash suitable for seeding a staff account.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		argon, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("sha256:   %s\n", auth.HashSHA256(args[0]))
		fmt.Printf("argon2id: %s\n", argon)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
