package service

import (
	"context"

	"github.com/set-night/o2ledger/internal/domain"
)

// Observer is notified after a ledger event has been committed.
type Observer interface {
	ProjectCompleted(ctx context.Context, employee domain.Employee, project domain.Project, res domain.CompletionResult)
	ActivityPurchased(ctx context.Context, employee domain.Employee, activity domain.Activity, res domain.PurchaseResult)
}

type nopObserver struct{}

func (nopObserver) ProjectCompleted(context.Context, domain.Employee, domain.Project, domain.CompletionResult) {
}

func (nopObserver) ActivityPurchased(context.Context, domain.Employee, domain.Activity, domain.PurchaseResult) {
}

func orNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
