package registry

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Registration failures other than AlreadyRegisteredError keep the collector
// unregistered: samples still reach snapshots but are not exported.

func registerHistogram(registerer prometheus.Registerer, collector prometheus.Histogram, logger *slog.Logger) prometheus.Histogram {
	if registerer == nil {
		return collector
	}
	if err := registerer.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing
			}
			return collector
		}
		logRegisterError(logger, err)
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, collector *prometheus.CounterVec, logger *slog.Logger) *prometheus.CounterVec {
	if registerer == nil {
		return collector
	}
	if err := registerer.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
			return collector
		}
		logRegisterError(logger, err)
	}
	return collector
}

func logRegisterError(logger *slog.Logger, err error) {
	loggerOrDefault(logger).Warn("collector not registered", slog.String("error", err.Error()))
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
