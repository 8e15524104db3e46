// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "o2ledger"

var (
	Completions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completions_total",
		Help:      "mark done calls by outcome.",
	}, []string{"outcome"})

	Purchases = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Activity purchases by outcome.",
	}, []string{"outcome"})

	Joins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "joins_total",
		Help:      "Project joins by outcome.",
	}, []string{"outcome"})

	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "XP awarded for completed projects.",
	})

	PointsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_spent_total",
		Help:      "XP spent on activities.",
	})

	CurrencyCredited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "currency_credited_total",
		Help:      "O2 credited by activity purchases.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Portal request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func ObserveCompletion(outcome string, awarded int64) {
	Completions.WithLabelValues(outcome).Inc()
	if awarded > 0 {
		PointsAwarded.Add(float64(awarded))
	}
}

func ObservePurchase(outcome string, spent int64, credited decimal.Decimal) {
	Purchases.WithLabelValues(outcome).Inc()
	if spent > 0 {
		PointsSpent.Add(float64(spent))
	}
	if credited.IsPositive() {
		CurrencyCredited.Add(credited.InexactFloat64())
	}
}

func ObserveJoin(outcome string) {
	Joins.WithLabelValues(outcome).Inc()
}

func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	RequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
