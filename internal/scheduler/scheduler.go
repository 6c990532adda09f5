package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/service"
)

// Fixed fire points for the weekly and monthly cadences. All cadences
// share the single time-of-day from the settings.
const (
	weeklyFireDay  = time.Sunday
	monthlyFireDay = 1
)

// Scheduler arms one periodic trigger per enabled cadence. Reconcile
// tears everything down and re-arms from the current settings, so it is
// safe to call it any number of times.
type Scheduler struct {
	service *service.BackupService
	log     zerolog.Logger

	rootCtx  context.Context
	rootStop context.CancelFunc

	// timeUntil computes the wait before a fire point. Tests swap it to
	// drive a trigger without waiting for wall-clock time.
	timeUntil func(time.Time) time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	armed  []domain.BackupType
}

func New(svc *service.BackupService, log zerolog.Logger) *Scheduler {
	// Trigger lifetimes are bound to the scheduler, not to whichever
	// request happened to call Reconcile.
	rootCtx, rootStop := context.WithCancel(context.Background())
	return &Scheduler{
		service:   svc,
		log:       log.With().Str("component", "scheduler").Logger(),
		rootCtx:   rootCtx,
		rootStop:  rootStop,
		timeUntil: time.Until,
	}
}

// Reconcile reads the current settings and re-arms the triggers. Armed
// triggers are always cancelled first, so calling Reconcile twice with
// unchanged settings leaves exactly one trigger per enabled cadence.
// An unparseable time-of-day is logged and arms nothing.
func (s *Scheduler) Reconcile(ctx context.Context) error {
	settings, err := s.service.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked()

	hour, minute, err := ParseTimeOfDay(settings.TimeOfDay)
	if err != nil {
		s.log.Error().Err(err).Str("time_of_day", settings.TimeOfDay).Msg("invalid backup time, no triggers armed")
		return nil
	}

	cadences := []struct {
		enabled bool
		cadence domain.BackupType
	}{
		{settings.DailyEnabled, domain.BackupTypeDaily},
		{settings.WeeklyEnabled, domain.BackupTypeWeekly},
		{settings.MonthlyEnabled, domain.BackupTypeMonthly},
	}

	runCtx, cancel := context.WithCancel(s.rootCtx)
	s.cancel = cancel

	for _, c := range cadences {
		if !c.enabled {
			continue
		}
		s.armed = append(s.armed, c.cadence)
		go s.run(runCtx, c.cadence, hour, minute)
		s.log.Info().
			Str("cadence", string(c.cadence)).
			Str("time_of_day", settings.TimeOfDay).
			Msg("trigger armed")
	}

	return nil
}

// Stop disarms all triggers and shuts the scheduler down.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.disarmLocked()
	s.mu.Unlock()
	s.rootStop()
}

// ArmedCadences reports which cadences currently have an armed trigger.
func (s *Scheduler) ArmedCadences() []domain.BackupType {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.BackupType, len(s.armed))
	copy(out, s.armed)
	return out
}

func (s *Scheduler) disarmLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.armed = nil
}

// run fires the cadence at each scheduled point until cancelled. A failed
// backup does not affect the trigger: the record carries the failure and
// the loop re-arms for the next occurrence.
func (s *Scheduler) run(ctx context.Context, cadence domain.BackupType, hour, minute int) {
	for {
		next := NextFire(time.Now(), cadence, hour, minute)
		timer := time.NewTimer(s.timeUntil(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		record := s.service.PerformBackup(ctx, cadence)
		s.log.Info().
			Str("cadence", string(cadence)).
			Int64("record_id", record.ID).
			Str("status", string(record.Status)).
			Msg("scheduled backup finished")
	}
}

// NextFire computes the next strictly-future fire time for a cadence.
// Daily fires every day at hour:minute, weekly on Sunday, monthly on the
// first of the month.
func NextFire(now time.Time, cadence domain.BackupType, hour, minute int) time.Time {
	year, month, day := now.Date()
	next := time.Date(year, month, day, hour, minute, 0, 0, now.Location())

	switch cadence {
	case domain.BackupTypeWeekly:
		next = next.AddDate(0, 0, int(weeklyFireDay)-int(next.Weekday()))
		for !next.After(now) {
			next = next.AddDate(0, 0, 7)
		}
	case domain.BackupTypeMonthly:
		next = time.Date(year, month, monthlyFireDay, hour, minute, 0, 0, now.Location())
		for !next.After(now) {
			next = next.AddDate(0, 1, 0)
		}
	default:
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
	}

	return next
}

// ParseTimeOfDay parses a strict "HH:MM" value.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day: %q", value)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in time of day: %q", value)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in time of day: %q", value)
	}

	return hour, minute, nil
}
