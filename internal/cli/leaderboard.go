package cli

import (
	"github.com/spf13/cobra"

	"github.com/set-night/o2ledger/internal/service"
)

// NewLeaderboardCommand creates the leaderboard command.
func NewLeaderboardCommand(rootOpts *RootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print employee ranks and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, store, err := openStore(cmd.Context(), rootOpts.Config)
			if err != nil {
				return err
			}
			defer pool.Close()

			standings, err := service.NewLeaderboardService(store).Top(cmd.Context(), top)
			if err != nil {
				return err
			}
			return writeStandings(cmd.OutOrStdout(), rootOpts.Format, standings)
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "only show the first N ranks (0 shows everyone)")

	return cmd
}
