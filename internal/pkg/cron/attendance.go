package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
)

// Sweeper marks absent the in-scope employees who never clocked in on a date.
type Sweeper interface {
	SweepAbsences(ctx context.Context, date time.Time) (attendance.SweepResponse, error)
}

type AbsenceSweepJobs struct {
	sweeper  Sweeper
	clock    clock.Clock
	interval time.Duration
}

func NewAbsenceSweepJobs(sweeper Sweeper, clk clock.Clock, interval time.Duration) *AbsenceSweepJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AbsenceSweepJobs{
		sweeper:  sweeper,
		clock:    clk,
		interval: interval,
	}
}

func (j *AbsenceSweepJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_absences_today", j.interval, j.SweepToday)
	scheduler.AddJob("sweep_absences_yesterday", time.Hour, j.SweepYesterday)
}

// SweepToday catches employees whose arrival cutoff has already passed today.
func (j *AbsenceSweepJobs) SweepToday(ctx context.Context) error {
	return j.sweep(ctx, clock.Today(j.clock))
}

// SweepYesterday closes the previous day once, during the first hour after midnight.
func (j *AbsenceSweepJobs) SweepYesterday(ctx context.Context) error {
	if j.clock.Now().Hour() != 0 {
		return nil
	}
	return j.sweep(ctx, clock.Today(j.clock).AddDate(0, 0, -1))
}

func (j *AbsenceSweepJobs) sweep(ctx context.Context, date time.Time) error {
	result, err := j.sweeper.SweepAbsences(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to sweep absences for %s: %w", date.Format(time.DateOnly), err)
	}

	slog.Info("Cron: Absence sweep finished",
		"date", result.Date,
		"candidates", result.Candidates,
		"created", result.Created)
	return nil
}
