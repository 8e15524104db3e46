package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/metrics"
	"github.com/set-night/o2ledger/internal/repository"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

type ActivityService struct {
	store    repository.Store
	ledger   *Ledger
	observer Observer
}

func NewActivityService(store repository.Store, ledger *Ledger, observer Observer) *ActivityService {
	return &ActivityService{store: store, ledger: ledger, observer: orNop(observer)}
}

// Purchase exchanges the activity's XP cost for its O2 payout and records a
// receipt. The balance change and the receipt are committed together.
func (s *ActivityService) Purchase(ctx context.Context, employeeID, activityID int64) (domain.PurchaseResult, error) {
	var (
		res      domain.PurchaseResult
		activity sqlc.Activity
		emp      sqlc.Employee
	)
	err := s.store.ExecTx(ctx, func(q sqlc.Querier) error {
		var err error
		activity, err = q.GetActivity(ctx, activityID)
		if err != nil {
			return fmt.Errorf("get activity: %w", orNotFound(err, domain.ErrActivityNotFound))
		}
		if !activity.Active {
			return domain.ErrActivityUnavailable
		}

		emp, err = s.ledger.transfer(ctx, q, employeeID, activity.PointsCost, activity.CurrencyPayout)
		if err != nil {
			return err
		}

		receipt, err := q.CreatePurchase(ctx, sqlc.CreatePurchaseParams{
			Receipt:          uuid.New(),
			ActivityID:       activity.ID,
			EmployeeID:       employeeID,
			NgoID:            activity.NgoID,
			PointsPaid:       activity.PointsCost,
			CurrencyReceived: activity.CurrencyPayout,
		})
		if err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		res = domain.PurchaseResult{
			Purchase:        rowToPurchase(receipt),
			PointsBalance:   emp.PointsBalance,
			CurrencyBalance: emp.CurrencyBalance,
		}
		return nil
	})
	if err != nil {
		metrics.ObservePurchase(purchaseOutcome(err), 0, decimal.Zero)
		return domain.PurchaseResult{}, err
	}

	metrics.ObservePurchase("ok", res.Purchase.PointsPaid, res.Purchase.CurrencyReceived)
	slog.Info("activity purchased",
		"activity_id", activityID,
		"employee_id", employeeID,
		"receipt", res.Purchase.Receipt,
		"points_paid", res.Purchase.PointsPaid,
		"currency_received", res.Purchase.CurrencyReceived.StringFixed(2),
	)
	s.observer.ActivityPurchased(ctx, rowToEmployee(emp), rowToActivity(activity), res)
	return res, nil
}

func purchaseOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrActivityUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *ActivityService) Get(ctx context.Context, id int64) (domain.Activity, error) {
	row, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("get activity: %w", orNotFound(err, domain.ErrActivityNotFound))
	}
	return rowToActivity(row), nil
}

// Create adds an activity to ngo's catalog.
func (s *ActivityService) Create(ctx context.Context, ngo domain.NGO, in domain.ActivityInput) (domain.Activity, error) {
	if err := validateActivity(in); err != nil {
		return domain.Activity{}, err
	}
	row, err := s.store.CreateActivity(ctx, sqlc.CreateActivityParams{
		NgoID:          ngo.ID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		PointsCost:     in.PointsCost,
		CurrencyPayout: in.CurrencyPayout,
		Active:         in.Active == nil || *in.Active,
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return rowToActivity(row), nil
}

func (s *ActivityService) Update(ctx context.Context, ngo domain.NGO, id int64, in domain.ActivityInput) (domain.Activity, error) {
	if err := validateActivity(in); err != nil {
		return domain.Activity{}, err
	}

	var out sqlc.Activity
	err := s.store.ExecTx(ctx, func(q sqlc.Querier) error {
		current, err := q.GetActivity(ctx, id)
		if err != nil {
			return fmt.Errorf("get activity: %w", orNotFound(err, domain.ErrActivityNotFound))
		}
		if current.NgoID != ngo.ID {
			return domain.ErrForbidden
		}
		active := current.Active
		if in.Active != nil {
			active = *in.Active
		}
		out, err = q.UpdateActivity(ctx, sqlc.UpdateActivityParams{
			ID:             id,
			Name:           strings.TrimSpace(in.Name),
			Description:    in.Description,
			PointsCost:     in.PointsCost,
			CurrencyPayout: in.CurrencyPayout,
			Active:         active,
		})
		if err != nil {
			return fmt.Errorf("update activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Activity{}, err
	}
	return s.withPurchaseCount(ctx, out)
}

// View returns an activity for the caller. NGOs see their own catalog and
// employees see active activities.
func (s *ActivityService) View(ctx context.Context, p domain.Principal, id int64) (domain.Activity, error) {
	row, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("get activity: %w", orNotFound(err, domain.ErrActivityNotFound))
	}

	switch {
	case p.IsNGO():
		if row.NgoID != p.NGO.ID {
			return domain.Activity{}, domain.ErrForbidden
		}
	case p.IsEmployee():
		if !row.Active {
			return domain.Activity{}, domain.ErrActivityNotFound
		}
	default:
		return domain.Activity{}, domain.ErrForbidden
	}
	return s.withPurchaseCount(ctx, row)
}

func (s *ActivityService) ListForNGO(ctx context.Context, ngo domain.NGO, page domain.Page) ([]domain.Activity, int64, error) {
	rows, err := s.store.ListActivitiesByNGO(ctx, sqlc.ListActivitiesByNGOParams{
		NgoID:  ngo.ID,
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	total, err := s.CountForNGO(ctx, ngo)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.withPurchaseCounts(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *ActivityService) CountForNGO(ctx context.Context, ngo domain.NGO) (int64, error) {
	total, err := s.store.CountActivitiesByNGO(ctx, ngo.ID)
	if err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return total, nil
}

// ListActive is the catalog employees shop from.
func (s *ActivityService) ListActive(ctx context.Context, page domain.Page) ([]domain.Activity, int64, error) {
	rows, err := s.store.ListActiveActivities(ctx, sqlc.ListActiveActivitiesParams{
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list active activities: %w", err)
	}
	total, err := s.store.CountActiveActivities(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count active activities: %w", err)
	}
	out, err := s.withPurchaseCounts(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// PurchaseHistory lists the employee's receipts, newest first.
func (s *ActivityService) PurchaseHistory(ctx context.Context, employeeID int64, page domain.Page) ([]domain.Purchase, int64, error) {
	rows, err := s.store.ListPurchasesByEmployee(ctx, sqlc.ListPurchasesByEmployeeParams{
		EmployeeID: employeeID,
		Limit:      page.Limit(),
		Offset:     page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	total, err := s.store.CountPurchasesByEmployee(ctx, employeeID)
	if err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}
	out := make([]domain.Purchase, len(rows))
	for i, r := range rows {
		out[i] = rowToPurchase(r)
	}
	return out, total, nil
}

func (s *ActivityService) withPurchaseCount(ctx context.Context, row sqlc.Activity) (domain.Activity, error) {
	a := rowToActivity(row)
	n, err := s.store.CountPurchasesByActivity(ctx, row.ID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("count purchases: %w", err)
	}
	a.PurchaseCount = n
	return a, nil
}

func (s *ActivityService) withPurchaseCounts(ctx context.Context, rows []sqlc.Activity) ([]domain.Activity, error) {
	out := make([]domain.Activity, len(rows))
	for i, r := range rows {
		a, err := s.withPurchaseCount(ctx, r)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func validateActivity(in domain.ActivityInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "required"
	}
	if in.PointsCost < 0 {
		fields["points_cost"] = "must not be negative"
	}
	if in.CurrencyPayout.IsNegative() {
		fields["currency_payout"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
