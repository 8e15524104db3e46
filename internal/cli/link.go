package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/set-night/o2ledger/internal/repository"
	"github.com/set-night/o2ledger/internal/service"
)

// NewLinkTelegramCommand creates the link-telegram command.
func NewLinkTelegramCommand(rootOpts *RootOptions) *cobra.Command {
	var employeeID, telegramID int64

	cmd := &cobra.Command{
		Use:   "link-telegram",
		Short: "Link an employee to a Telegram user",
		Long: `Link an employee to a Telegram user so the bot can identify them.

The Telegram id is shown to the user by the bot's /start command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, store, err := openStore(cmd.Context(), rootOpts.Config)
			if err != nil {
				return err
			}
			defer pool.Close()

			return linkTelegram(cmd.Context(), cmd.OutOrStdout(), store, employeeID, telegramID)
		},
	}

	cmd.Flags().Int64Var(&employeeID, "employee", 0, "employee id")
	cmd.Flags().Int64Var(&telegramID, "telegram", 0, "telegram user id")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("telegram")

	return cmd
}

func linkTelegram(ctx context.Context, w io.Writer, store repository.Store, employeeID, telegramID int64) error {
	employees := service.NewEmployeeService(store, service.NewLeaderboardService(store))
	emp, err := employees.LinkTelegram(ctx, employeeID, telegramID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "linked employee %d (%s) to telegram user %d\n", emp.ID, emp.Name, telegramID)
	return nil
}
