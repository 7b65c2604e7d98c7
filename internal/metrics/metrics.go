package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stackit_votes_total",
		Help: "Vote transitions applied, by target kind and transition.",
	}, []string{"kind", "transition"})

	VoteRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stackit_vote_rejections_total",
		Help: "Vote and accept requests rejected, by reason.",
	}, []string{"reason"})

	AcceptancesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stackit_acceptances_total",
		Help: "Accept requests, by outcome (accepted, superseded, unchanged).",
	}, []string{"outcome"})

	ReputationDelta = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stackit_reputation_delta",
		Help:    "Reputation changes applied to authors.",
		Buckets: []float64{-12, -7, -5, -2, 0, 2, 5, 7, 10, 12, 15},
	})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stackit_notification_failures_total",
		Help: "Notifications that could not be stored.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stackit_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
