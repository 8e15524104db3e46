package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/repository"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

// Ledger is the only writer of employee balances. The exported methods run in
// their own transaction; the unexported ones join the caller's.
type Ledger struct {
	store repository.Store
}

func NewLedger(store repository.Store) *Ledger {
	return &Ledger{store: store}
}

// AwardPoints adds XP to an employee.
func (l *Ledger) AwardPoints(ctx context.Context, employeeID, amount int64) (domain.Employee, error) {
	var out sqlc.Employee
	err := l.store.ExecTx(ctx, func(q sqlc.Querier) error {
		var err error
		out, err = l.award(ctx, q, employeeID, amount)
		return err
	})
	if err != nil {
		return domain.Employee{}, err
	}
	return rowToEmployee(out), nil
}

// DebitPoints removes XP, failing with *domain.InsufficientBalanceError when
// the balance does not cover amount.
func (l *Ledger) DebitPoints(ctx context.Context, employeeID, amount int64) (domain.Employee, error) {
	var out sqlc.Employee
	err := l.store.ExecTx(ctx, func(q sqlc.Querier) error {
		var err error
		out, err = l.debit(ctx, q, employeeID, amount)
		return err
	})
	if err != nil {
		return domain.Employee{}, err
	}
	return rowToEmployee(out), nil
}

// CreditCurrency adds O2 to an employee.
func (l *Ledger) CreditCurrency(ctx context.Context, employeeID int64, amount decimal.Decimal) (domain.Employee, error) {
	var out sqlc.Employee
	err := l.store.ExecTx(ctx, func(q sqlc.Querier) error {
		var err error
		out, err = l.credit(ctx, q, employeeID, amount)
		return err
	})
	if err != nil {
		return domain.Employee{}, err
	}
	return rowToEmployee(out), nil
}

// Transfer debits XP and credits O2 together: either both apply or neither.
func (l *Ledger) Transfer(ctx context.Context, employeeID, debit int64, credit decimal.Decimal) (domain.Employee, error) {
	var out sqlc.Employee
	err := l.store.ExecTx(ctx, func(q sqlc.Querier) error {
		var err error
		out, err = l.transfer(ctx, q, employeeID, debit, credit)
		return err
	})
	if err != nil {
		return domain.Employee{}, err
	}
	return rowToEmployee(out), nil
}

func (l *Ledger) award(ctx context.Context, q sqlc.Querier, employeeID, amount int64) (sqlc.Employee, error) {
	if amount < 0 {
		return sqlc.Employee{}, domain.ErrInvalidAmount
	}
	row, err := q.AddEmployeePoints(ctx, sqlc.AddEmployeePointsParams{Points: amount, ID: employeeID})
	if err != nil {
		return sqlc.Employee{}, fmt.Errorf("award points: %w", orNotFound(err, domain.ErrEmployeeNotFound))
	}
	return row, nil
}

func (l *Ledger) debit(ctx context.Context, q sqlc.Querier, employeeID, amount int64) (sqlc.Employee, error) {
	if amount < 0 {
		return sqlc.Employee{}, domain.ErrInvalidAmount
	}

	// Lock the balance row for the rest of the transaction.
	emp, err := q.GetEmployeeForUpdate(ctx, employeeID)
	if err != nil {
		return sqlc.Employee{}, fmt.Errorf("lock employee: %w", orNotFound(err, domain.ErrEmployeeNotFound))
	}
	if emp.PointsBalance < amount {
		return sqlc.Employee{}, &domain.InsufficientBalanceError{Required: amount, Available: emp.PointsBalance}
	}

	row, err := q.DebitEmployeePoints(ctx, sqlc.DebitEmployeePointsParams{Points: amount, ID: employeeID})
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlc.Employee{}, &domain.InsufficientBalanceError{Required: amount, Available: emp.PointsBalance}
	}
	if err != nil {
		return sqlc.Employee{}, fmt.Errorf("debit points: %w", err)
	}
	return row, nil
}

func (l *Ledger) credit(ctx context.Context, q sqlc.Querier, employeeID int64, amount decimal.Decimal) (sqlc.Employee, error) {
	if amount.IsNegative() {
		return sqlc.Employee{}, domain.ErrInvalidAmount
	}
	row, err := q.AddEmployeeCurrency(ctx, sqlc.AddEmployeeCurrencyParams{Amount: amount, ID: employeeID})
	if err != nil {
		return sqlc.Employee{}, fmt.Errorf("credit currency: %w", orNotFound(err, domain.ErrEmployeeNotFound))
	}
	return row, nil
}

func (l *Ledger) transfer(ctx context.Context, q sqlc.Querier, employeeID, debit int64, credit decimal.Decimal) (sqlc.Employee, error) {
	if debit < 0 || credit.IsNegative() {
		return sqlc.Employee{}, domain.ErrInvalidAmount
	}
	if _, err := l.debit(ctx, q, employeeID, debit); err != nil {
		return sqlc.Employee{}, err
	}
	return l.credit(ctx, q, employeeID, credit)
}
