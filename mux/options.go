package mux

import (
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Router.
// Returns error for validation failures.
type Option func(*Router) error

// WithLogger sets the logger used for security events and handler faults.
//
// Default: a logger that discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Router) error {
		if l == nil {
			return errors.New("mux: logger cannot be nil")
		}
		r.logger = l
		return nil
	}
}

// WithMetrics registers dispatch metrics with reg.
//
// Default: no metrics.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Router) error {
		if reg == nil {
			return errors.New("mux: metrics registerer cannot be nil")
		}
		m, err := newMetrics(reg)
		if err != nil {
			return err
		}
		r.metrics = m
		return nil
	}
}

// WithTracer sets the tracer used to record one span per dispatch.
//
// Default: a no-op tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) error {
		if t == nil {
			return errors.New("mux: tracer cannot be nil")
		}
		r.tracer = t
		return nil
	}
}

// discardLogger returns a logrus logger writing nowhere.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
