package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges for the rental lifecycle, registered on the default
// registry and served from /metrics.
var (
	ListingsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carhive_listings_added_total",
		Help: "Listings added to the catalog.",
	})
	ListingsUnlisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carhive_listings_unlisted_total",
		Help: "Listings withdrawn from future rentals.",
	})
	Rentals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carhive_rentals_total",
		Help: "Successful rent operations.",
	})
	Returns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carhive_returns_total",
		Help: "Timely returns.",
	})
	Extensions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carhive_extensions_total",
		Help: "Rental extensions.",
	})
	Expiries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carhive_expiries_total",
		Help: "Rentals expired with deposit forfeiture.",
	})
	Withdrawals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carhive_withdrawals_total",
		Help: "Authority withdrawals from the revenue balance.",
	})

	RevenueBalanceCents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carhive_revenue_balance_cents",
		Help: "Current revenue balance in cents.",
	})
	DepositPoolCents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carhive_deposit_pool_cents",
		Help: "Current escrowed deposit pool in cents.",
	})
)

// SetBalances refreshes both balance gauges.
func SetBalances(revenue, deposits uint64) {
	RevenueBalanceCents.Set(float64(revenue))
	DepositPoolCents.Set(float64(deposits))
}
