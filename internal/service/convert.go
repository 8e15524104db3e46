package service

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

// pgTimestamptzToTime converts pgtype.Timestamptz to time.Time.
func pgTimestamptzToTime(ts pgtype.Timestamptz) time.Time {
	if ts.Valid {
		return ts.Time
	}
	return time.Time{}
}

// pgTimestamptzToTimePtr converts pgtype.Timestamptz to *time.Time.
func pgTimestamptzToTimePtr(ts pgtype.Timestamptz) *time.Time {
	if ts.Valid {
		t := ts.Time
		return &t
	}
	return nil
}

func pgDateToTimePtr(d pgtype.Date) *time.Time {
	if d.Valid {
		t := d.Time
		return &t
	}
	return nil
}

func timePtrToPgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// orNotFound maps pgx.ErrNoRows to the given domain sentinel.
func orNotFound(err, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return err
}

func rowToEmployee(row sqlc.Employee) domain.Employee {
	return domain.Employee{
		ID:         row.ID,
		UserID:     row.UserID,
		TelegramID: row.TelegramID,
		Name:       row.Name,
		Points:     row.PointsBalance,
		Currency:   row.CurrencyBalance,
		CreatedAt:  pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:  pgTimestamptzToTime(row.UpdatedAt),
	}
}

func rowToNGO(row sqlc.Ngo) domain.NGO {
	return domain.NGO{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Active:    row.Active,
		CreatedAt: pgTimestamptzToTime(row.CreatedAt),
	}
}

func rowToProject(row sqlc.Project) domain.Project {
	return domain.Project{
		ID:           row.ID,
		NGOID:        row.NgoID,
		Name:         row.Name,
		Description:  row.Description,
		DateStart:    pgDateToTimePtr(row.DateStart),
		DateEnd:      pgDateToTimePtr(row.DateEnd),
		RewardPoints: row.RewardPoints,
		CreatedAt:    pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:    pgTimestamptzToTime(row.UpdatedAt),
	}
}

func rowToParticipation(row sqlc.ProjectParticipant) *domain.Participation {
	return &domain.Participation{
		ProjectID:   row.ProjectID,
		EmployeeID:  row.EmployeeID,
		JoinedAt:    pgTimestamptzToTime(row.JoinedAt),
		CompletedAt: pgTimestamptzToTimePtr(row.CompletedAt),
	}
}

func rowToActivity(row sqlc.Activity) domain.Activity {
	return domain.Activity{
		ID:             row.ID,
		NGOID:          row.NgoID,
		Name:           row.Name,
		Description:    row.Description,
		PointsCost:     row.PointsCost,
		CurrencyPayout: row.CurrencyPayout,
		Active:         row.Active,
		CreatedAt:      pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:      pgTimestamptzToTime(row.UpdatedAt),
	}
}

func rowToPurchase(row sqlc.Purchase) domain.Purchase {
	return domain.Purchase{
		ID:               row.ID,
		Receipt:          row.Receipt,
		ActivityID:       row.ActivityID,
		EmployeeID:       row.EmployeeID,
		NGOID:            row.NgoID,
		PointsPaid:       row.PointsPaid,
		CurrencyReceived: row.CurrencyReceived,
		PurchasedAt:      pgTimestamptzToTime(row.PurchasedAt),
	}
}
