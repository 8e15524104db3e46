package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Activity struct {
	ID             int64
	NGOID          int64
	Name           string
	Description    string
	PointsCost     int64           // XP price
	CurrencyPayout decimal.Decimal // O2 received
	Active         bool
	PurchaseCount  int64 // computed field
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ActivityInput is the editable part of an activity.
type ActivityInput struct {
	Name           string
	Description    string
	PointsCost     int64
	CurrencyPayout decimal.Decimal
	// Active is optional: new activities default to active and updates
	// keep the current flag.
	Active *bool
}

// Purchase is an append-only receipt; the amounts are snapshots taken at
// purchase time.
type Purchase struct {
	ID               int64
	Receipt          uuid.UUID
	ActivityID       int64
	EmployeeID       int64
	NGOID            int64
	PointsPaid       int64
	CurrencyReceived decimal.Decimal
	PurchasedAt      time.Time
}

type PurchaseResult struct {
	Purchase        Purchase
	PointsBalance   int64
	CurrencyBalance decimal.Decimal
}
