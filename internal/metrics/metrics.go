// Package metrics exposes Prometheus collectors for the ledger and the HTTP layer.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-petr/edupay/internal/domain"
)

const namespace = "edupay"

var (
	// LedgerOperations counts ledger operations by operation and outcome.
	LedgerOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_operations_total",
		Help:      "Ledger operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// GuardBlocks counts attempts refused by the rate limiter.
	GuardBlocks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_blocked_total",
		Help:      "Attempts refused because of too many failures.",
	}, []string{"scope"})

	// AncillaryFailures counts receipt, email and event failures after a committed operation.
	AncillaryFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ancillary_failures_total",
		Help:      "Failures of best-effort work following a ledger operation.",
	}, []string{"kind"})

	// RequestDuration observes HTTP request latencies.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latencies.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(LedgerOperations, GuardBlocks, AncillaryFailures, RequestDuration)
}

var outcomes = []struct {
	err   error
	label string
}{
	{domain.ErrInvalidAmount, "invalid_amount"},
	{domain.ErrInvalidInvoice, "invalid_invoice"},
	{domain.ErrInsufficientBalance, "insufficient_balance"},
	{domain.ErrWrongPasscode, "wrong_passcode"},
	{domain.ErrRateLimited, "rate_limited"},
	{domain.ErrAccountNotFound, "account_not_found"},
	{domain.ErrNothingDue, "nothing_due"},
	{domain.ErrFeeNotFound, "fee_not_found"},
}

// Outcome maps an operation result to a low cardinality label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}

	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			return o.label
		}
	}

	return "error"
}

// ObserveLedger counts one ledger operation.
func ObserveLedger(operation string, err error) {
	LedgerOperations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware observes the latency of every request by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
