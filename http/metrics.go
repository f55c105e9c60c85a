package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var updateCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ddns",
	Subsystem: "api",
	Name:      "updates_total",
	Help:      "Counter of record update requests by type, method, and result.",
}, []string{"type", "method", "result"})

var invalidRequestCount = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ddns",
	Subsystem: "api",
	Name:      "invalid_requests_total",
	Help:      "Counter of requests rejected by validation.",
})

var authFailureCount = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ddns",
	Subsystem: "api",
	Name:      "auth_failures_total",
	Help:      "Counter of rejected authentication attempts.",
})
