package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/portal"
)

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		userID int64
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a portal bearer token for a login user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive id")
			}
			token, err := portal.IssueToken([]byte(rootOpts.Config.JWTSecret), userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "login user id of the employee or NGO")
	cmd.Flags().DurationVar(&ttl, "ttl", config.TokenLifetime, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
