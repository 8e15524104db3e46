package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Badge string

const (
	BadgeBronze Badge = "bronze"
	BadgeSilver Badge = "silver"
	BadgeGold   Badge = "gold"
)

var (
	GoldThreshold   = decimal.NewFromInt(100)
	SilverThreshold = decimal.NewFromInt(50)
)

// BadgeFor maps an O2 balance to its tier.
func BadgeFor(currency decimal.Decimal) Badge {
	switch {
	case currency.GreaterThanOrEqual(GoldThreshold):
		return BadgeGold
	case currency.GreaterThanOrEqual(SilverThreshold):
		return BadgeSilver
	default:
		return BadgeBronze
	}
}

type Employee struct {
	ID         int64
	UserID     int64
	TelegramID *int64
	Name       string
	Points     int64           // XP
	Currency   decimal.Decimal // O2
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e *Employee) Badge() Badge {
	return BadgeFor(e.Currency)
}

// Profile is the employee's balance sheet as shown in the portal and the bot.
type Profile struct {
	Employee  Employee
	Badge     Badge
	Rank      int
	Employees int
}
