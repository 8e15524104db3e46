package portal

import (
	"time"

	"github.com/google/uuid"

	"github.com/set-night/o2ledger/internal/domain"
)

const dateLayout = "2006-01-02"

type employeeJSON struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	PointsBalance   int64        `json:"points_balance"`
	CurrencyBalance string       `json:"currency_balance"`
	Badge           domain.Badge `json:"badge"`
	Rank            int          `json:"rank,omitempty"`
	Employees       int          `json:"employees,omitempty"`
	TelegramLinked  bool         `json:"telegram_linked"`
}

type ngoJSON struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Projects   int64  `json:"projects"`
	Activities int64  `json:"activities"`
}

type meJSON struct {
	UserID   int64         `json:"user_id"`
	Employee *employeeJSON `json:"employee"`
	NGO      *ngoJSON      `json:"ngo"`
}

type projectJSON struct {
	ID           int64   `json:"id"`
	NGOID        int64   `json:"ngo_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DateStart    *string `json:"date_start"`
	DateEnd      *string `json:"date_end"`
	RewardPoints int64   `json:"reward_points"`
	Participants *int64  `json:"participants,omitempty"`
	Completions  *int64  `json:"completions,omitempty"`
	IsMember     *bool   `json:"is_member,omitempty"`
	IsCompleted  *bool   `json:"is_completed,omitempty"`
}

type activityJSON struct {
	ID             int64  `json:"id"`
	NGOID          int64  `json:"ngo_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsCost     int64  `json:"points_cost"`
	CurrencyPayout string `json:"currency_payout"`
	Active         bool   `json:"active"`
	PurchaseCount  int64  `json:"purchase_count"`
}

type purchaseJSON struct {
	Receipt          uuid.UUID `json:"receipt"`
	ActivityID       int64     `json:"activity_id"`
	PointsPaid       int64     `json:"points_paid"`
	CurrencyReceived string    `json:"currency_received"`
	PurchasedAt      time.Time `json:"purchased_at"`
}

type standingJSON struct {
	Rank       int          `json:"rank"`
	EmployeeID int64        `json:"employee_id"`
	Name       string       `json:"name"`
	Currency   string       `json:"currency_balance"`
	Badge      domain.Badge `json:"badge"`
}

type pageJSON[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func newPage[T any](items []T, page domain.Page, total int64) pageJSON[T] {
	if items == nil {
		items = []T{}
	}
	return pageJSON[T]{Items: items, Page: page.Number, PageSize: int(page.Limit()), Total: total}
}

func toEmployeeJSON(e domain.Employee) *employeeJSON {
	return &employeeJSON{
		ID:              e.ID,
		Name:            e.Name,
		PointsBalance:   e.Points,
		CurrencyBalance: e.Currency.StringFixed(2),
		Badge:           e.Badge(),
		TelegramLinked:  e.TelegramID != nil,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toProjectJSON(p domain.Project) projectJSON {
	return projectJSON{
		ID:           p.ID,
		NGOID:        p.NGOID,
		Name:         p.Name,
		Description:  p.Description,
		DateStart:    formatDate(p.DateStart),
		DateEnd:      formatDate(p.DateEnd),
		RewardPoints: p.RewardPoints,
	}
}

func toProjectViewJSON(v domain.ProjectView, forEmployee bool) projectJSON {
	out := toProjectJSON(v.Project)
	out.Participants = &v.Participants
	out.Completions = &v.Completions
	if forEmployee {
		out.IsMember = &v.IsMember
		out.IsCompleted = &v.IsCompleted
	}
	return out
}

func toActivityJSON(a domain.Activity) activityJSON {
	return activityJSON{
		ID:             a.ID,
		NGOID:          a.NGOID,
		Name:           a.Name,
		Description:    a.Description,
		PointsCost:     a.PointsCost,
		CurrencyPayout: a.CurrencyPayout.StringFixed(2),
		Active:         a.Active,
		PurchaseCount:  a.PurchaseCount,
	}
}

func toPurchaseJSON(p domain.Purchase) purchaseJSON {
	return purchaseJSON{
		Receipt:          p.Receipt,
		ActivityID:       p.ActivityID,
		PointsPaid:       p.PointsPaid,
		CurrencyReceived: p.CurrencyReceived.StringFixed(2),
		PurchasedAt:      p.PurchasedAt,
	}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
