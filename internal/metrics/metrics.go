package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the financial core. Registered on the default registry and
// exposed via the /metrics route.
var (
	CommissionsCalculated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vendorpay",
		Name:      "commissions_calculated_total",
		Help:      "Number of commissions computed at order time.",
	})

	CommissionAmount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vendorpay",
		Name:      "commission_amount_total",
		Help:      "Cumulative commission taken, in currency units.",
	})

	PayoutsRequested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vendorpay",
		Name:      "payouts_requested_total",
		Help:      "Number of payout requests accepted.",
	})

	PayoutsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendorpay",
		Name:      "payouts_rejected_total",
		Help:      "Number of payout requests rejected, by reason.",
	}, []string{"reason"})

	PayoutsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendorpay",
		Name:      "payouts_processed_total",
		Help:      "Number of payout processing attempts, by outcome.",
	}, []string{"outcome"})

	TrialChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vendorpay",
		Name:      "trial_checks_total",
		Help:      "Number of trial eligibility checks, by risk level.",
	}, []string{"risk_level"})

	TrialDenials = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vendorpay",
		Name:      "trial_denials_total",
		Help:      "Number of trial signups denied by the fraud scorer.",
	})

	FraudScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vendorpay",
		Name:      "trial_fraud_score",
		Help:      "Distribution of computed fraud scores.",
		Buckets:   []float64{0, 10, 20, 40, 60, 70, 85, 100},
	})
)
