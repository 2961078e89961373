package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/forcecharge/config"
	"github.com/kilianp07/forcecharge/connectors/store"
	coremetrics "github.com/kilianp07/forcecharge/core/metrics"
	"github.com/kilianp07/forcecharge/core/scheduler"
	"github.com/kilianp07/forcecharge/infra/announce"
	"github.com/kilianp07/forcecharge/infra/logger"
	"github.com/kilianp07/forcecharge/infra/metrics"
	"github.com/kilianp07/forcecharge/jobs/forcecharge"
)

// Service wires the store client, metrics sinks, announcer and the
// throttled planning job into a single scheduler loop.
type Service struct {
	Scheduler *scheduler.Scheduler

	announcer   *announce.MQTTAnnouncer
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	client := store.New(cfg.Store)

	var sinks []coremetrics.RunRecorder
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.RunRecorder
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	var ann forcecharge.Announcer
	if cfg.Announce.Enabled() {
		a, err := announce.New(cfg.Announce)
		if err != nil {
			return nil, fmt.Errorf("mqtt announcer: %w", err)
		}
		svc.announcer = a
		ann = a
	}

	job := forcecharge.NewJob(client, sink, ann, logger.New("force-charge"))
	throttled := scheduler.NewThrottledJob(job,
		time.Duration(cfg.Planner.JobMaxAgeMinutes)*time.Minute)
	svc.Scheduler = scheduler.New(
		time.Duration(cfg.Planner.PollIntervalSeconds)*time.Second,
		logger.New("scheduler"), throttled)
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return s.Scheduler.Start(ctx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.announcer != nil {
		s.announcer.Close()
	}
	return nil
}
