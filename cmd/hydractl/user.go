package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	gormstore "github.com/doodlesbykumbi/hydra-in-go/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Long: `Create a user and assign it roles.

The roles must exist. The seeded roles are admin, modeller and viewer.

Example:
  hydractl user create alice --role admin
  hydractl user create bob --display-name "Bob Smith" --role modeller --role viewer`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		displayName, _ := cmd.Flags().GetString("display-name")
		roles, _ := cmd.Flags().GetStringSlice("role")

		conn, err := connect(cliLogger())
		if err != nil {
			return err
		}

		user := &model.User{Username: args[0], DisplayName: displayName}
		if err := gormstore.NewUsersStore(conn).CreateUser(user, roles); err != nil {
			return fmt.Errorf("failed to create user %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s with id %d\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("display-name", "", "Name shown in cloned project names")
	userCreateCmd.Flags().StringSlice("role", nil, "Role code to assign (repeatable)")
}
