package mux

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes recorded in the gimli_dispatch_total counter.
const (
	outcomeOK               = "ok"
	outcomeRedirect         = "redirect"
	outcomeNotFound         = "not_found"
	outcomeBadRequest       = "bad_request"
	outcomeMethodNotAllowed = "method_not_allowed"
	outcomeError            = "error"
)

// methodOther is the method label of requests outside the dispatchable
// methods.
const methodOther = "other"

// methodLabel returns the method label of req. Only dispatchable methods are
// recorded as sent; anything else a client puts on the request line is
// folded into methodOther.
func methodLabel(req *Request) string {
	if !isAllowedMethod(req.Method) || (req.Method == MethodCLI && req.fromHTTP) {
		return methodOther
	}
	return req.Method
}

// metrics holds the dispatch collectors.
type metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gimli_dispatch_total",
			Help: "Dispatched requests by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gimli_dispatch_duration_seconds",
			Help:    "Dispatch latency by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	var err error
	if m.dispatches, err = register(reg, m.dispatches); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c with reg. When an identical collector is already
// registered, as with several routers sharing one registry, the existing one
// is returned.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// observe records one dispatch. A nil receiver records nothing.
func (m *metrics) observe(method, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
