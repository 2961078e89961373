package forcecharge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/forcecharge/connectors/store"
	"github.com/kilianp07/forcecharge/core/logger"
	"github.com/kilianp07/forcecharge/core/metrics"
	"github.com/kilianp07/forcecharge/core/model"
	"github.com/kilianp07/forcecharge/core/plan"
)

// Store is the backend surface the planning job needs.
type Store interface {
	GetSettings(ctx context.Context) (model.Settings, error)
	LatestForceChargeRange(ctx context.Context) (*model.ForceChargeRange, error)
	QueryPrices(ctx context.Context, from, to time.Time) ([]model.PricePoint, error)
	CreateForceChargeRange(ctx context.Context, r model.ForceChargeRange) (model.ForceChargeRange, error)
	CreateMessage(ctx context.Context, title, body string) (model.Message, error)
	SendPush(ctx context.Context, messageID string) error
}

// Announcer publishes created ranges to interested subscribers.
type Announcer interface {
	AnnounceRanges(ranges []model.ForceChargeRange) error
}

// Job inspects upcoming electricity prices and creates force-charge
// ranges for windows that are cheap relative to their local trend.
type Job struct {
	store     Store
	sink      metrics.RunRecorder
	announcer Announcer
	log       logger.Logger

	now func() time.Time
}

// NewJob creates the planning job. sink and announcer may be nil.
func NewJob(st Store, sink metrics.RunRecorder, announcer Announcer, log logger.Logger) *Job {
	return &Job{store: st, sink: sink, announcer: announcer, log: log, now: time.Now}
}

// Name implements scheduler.Job.
func (j *Job) Name() string { return "force-charge-planner" }

// Run executes one planning pass and records its outcome.
func (j *Job) Run(ctx context.Context) error {
	start := j.now()
	res := metrics.RunResult{Start: start}
	err := j.run(ctx, &res)
	res.Duration = j.now().Sub(start)
	res.Failed = err != nil
	if j.sink != nil {
		if serr := j.sink.RecordRun(res); serr != nil {
			j.log.Warnf("record run: %v", serr)
		}
	}
	return err
}

func (j *Job) run(ctx context.Context, res *metrics.RunResult) error {
	settings, err := j.store.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoSettings) {
			return fmt.Errorf("planning aborted: %w", err)
		}
		return fmt.Errorf("fetch settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	from, err := j.searchWindowStart(ctx)
	if err != nil {
		return err
	}
	to := from.Add(settings.SearchWindowDuration())

	points, err := j.store.QueryPrices(ctx, from, to)
	if err != nil {
		return fmt.Errorf("query prices: %w", err)
	}
	res.PricePoints = len(points)

	groups := plan.Plan(points, settings)
	res.Groups = len(groups)
	if len(groups) == 0 {
		j.log.Debugw("no cheap windows found", map[string]any{
			"price_points": len(points),
			"from":         from,
			"to":           to,
		})
		return nil
	}

	created, creationErrs := j.createRanges(ctx, groups)
	res.RangesCreated = len(created)
	if len(created) == 0 {
		// Individual creation failures are skipped, but a run that
		// stored nothing despite finding cheap windows has failed.
		return errors.Join(creationErrs...)
	}

	if j.announcer != nil {
		if err := j.announcer.AnnounceRanges(created); err != nil {
			j.log.Warnf("announce ranges: %v", err)
		}
	}
	return j.notify(ctx, created)
}

// searchWindowStart returns the lower bound of the price query: the end
// of the latest existing range, or now when no range ends later.
func (j *Job) searchWindowStart(ctx context.Context) (time.Time, error) {
	latest, err := j.store.LatestForceChargeRange(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("latest range: %w", err)
	}
	now := j.now()
	if latest != nil && latest.EndsAt.After(now) {
		return latest.EndsAt, nil
	}
	return now, nil
}

// createRanges stores one range per group. A failed creation is logged,
// collected as a RangeCreationError and skipped; it does not abort the
// remaining groups.
func (j *Job) createRanges(ctx context.Context, groups []model.PriceGroup) ([]model.ForceChargeRange, []error) {
	var (
		created []model.ForceChargeRange
		errs    []error
	)
	for i, g := range groups {
		start, end, ok := g.Span()
		if !ok {
			continue
		}
		stored, err := j.store.CreateForceChargeRange(ctx, model.ForceChargeRange{
			StartsAt:  start,
			EndsAt:    end,
			TargetSoC: 1.0,
			State:     model.RangeStatePlanned,
			Source:    model.RangeSourceAutomatic,
		})
		if err != nil {
			rerr := &RangeCreationError{GroupIndex: i, Err: err}
			j.log.Errorf("%v (%s - %s)", rerr,
				start.Format(time.RFC3339), end.Format(time.RFC3339))
			errs = append(errs, rerr)
			continue
		}
		j.log.Infof("planned force charging %s - %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
		created = append(created, stored)
	}
	return created, errs
}

func (j *Job) notify(ctx context.Context, created []model.ForceChargeRange) error {
	msg, err := j.store.CreateMessage(ctx, "Force charging planned", DescribeRanges(created))
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	if err := j.store.SendPush(ctx, msg.ID); err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	return nil
}
