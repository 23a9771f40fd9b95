package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/hydra-in-go/pkg/server/store/gorm"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage bearer tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue <username>",
	Short: "Issue a bearer token for a user",
	Long: `Issue a bearer token for a user, signed with HYDRA_TOKEN_SECRET.

The token lifetime defaults to the token_ttl configuration attribute.

Example:
  hydractl token issue alice
  curl -H "Authorization: Bearer $(hydractl token issue alice)" localhost:8000/whoami`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl == 0 {
			ttl = cfg.TokenLifetime()
		}

		signer, err := newSigner()
		if err != nil {
			return err
		}
		conn, err := connect(newLogger(cfg))
		if err != nil {
			return err
		}

		user, err := gormstore.NewUsersStore(conn).GetUserByName(args[0])
		if err != nil {
			return fmt.Errorf("failed to load user %s: %w", args[0], err)
		}
		tok, err := signer.Issue(user.ID, user.Username, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenIssueCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to token_ttl)")
}
