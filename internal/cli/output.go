package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/set-night/o2ledger/internal/domain"
)

type standingJSON struct {
	Rank       int    `json:"rank"`
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	O2         string `json:"o2"`
	Badge      string `json:"badge"`
}

// writeStandings prints the leaderboard as a table or as JSON.
func writeStandings(w io.Writer, format string, standings []domain.Standing) error {
	if format == "json" {
		out := make([]standingJSON, len(standings))
		for i, s := range standings {
			out[i] = standingJSON{
				Rank:       s.Rank,
				EmployeeID: s.EmployeeID,
				Name:       s.Name,
				O2:         s.Currency.StringFixed(2),
				Badge:      string(s.Badge),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tO2\tBADGE")
	for _, s := range standings {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", s.Rank, s.EmployeeID, s.Name, s.Currency.StringFixed(2), s.Badge)
	}
	return tw.Flush()
}
