package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Standing struct {
	Rank       int
	EmployeeID int64
	Name       string
	Currency   decimal.Decimal
	Badge      Badge
}

// Rank orders employees by descending O2 balance using standard competition
// ranking: equal balances share a rank and the next lower balance is ranked
// 1 + the number of employees strictly above it ([100 80 80 50] -> [1 2 2 4]).
// Ties are listed by employee id.
func Rank(employees []Employee) []Standing {
	out := make([]Standing, len(employees))
	for i, e := range employees {
		out[i] = Standing{
			EmployeeID: e.ID,
			Name:       e.Name,
			Currency:   e.Currency,
			Badge:      BadgeFor(e.Currency),
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Currency.Cmp(out[j].Currency); c != 0 {
			return c > 0
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})

	for i := range out {
		if i > 0 && out[i].Currency.Equal(out[i-1].Currency) {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}

// RankOf returns the standing of one employee, or false when absent.
func RankOf(standings []Standing, employeeID int64) (Standing, bool) {
	for _, s := range standings {
		if s.EmployeeID == employeeID {
			return s, true
		}
	}
	return Standing{}, false
}
