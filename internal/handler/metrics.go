package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qa_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qa_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qa_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qa_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qa_token_verifications_total",
			Help: "Total number of access token checks by status.",
		},
		[]string{"status"},
	)

	resetEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qa_reset_password_emails_total",
			Help: "Total number of reset password emails by status.",
		},
		[]string{"status"},
	)

	answerLikesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qa_answer_likes_total",
		Help: "Total number of recorded answer likes.",
	})
)
