package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/forcecharge/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	ranges   prometheus.Counter
	points   prometheus.Gauge
	duration prometheus.Histogram
}

// NewPromSink registers run metrics on the default Prometheus
// registerer. The Prometheus server should be started separately.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forcecharge_runs_total",
		Help: "Total number of planning job executions",
	}, []string{"failed"})
	ranges := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "forcecharge_ranges_created_total",
		Help: "Total number of force-charge ranges created",
	})
	points := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "forcecharge_last_run_price_points",
		Help: "Number of price points inspected by the last run",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "forcecharge_run_duration_seconds",
		Help:    "Wall-clock duration of planning job executions",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(ranges); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ranges = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(points); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			points = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, ranges: ranges, points: points, duration: duration}, nil
}

// RecordRun updates all run metrics.
func (s *PromSink) RecordRun(res coremetrics.RunResult) error {
	s.runs.WithLabelValues(strconv.FormatBool(res.Failed)).Inc()
	s.ranges.Add(float64(res.RangesCreated))
	s.points.Set(float64(res.PricePoints))
	s.duration.Observe(res.Duration.Seconds())
	return nil
}
