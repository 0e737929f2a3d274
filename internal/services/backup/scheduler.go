// Package backup runs the monthly backup job: a database dump and a
// media archive, taken on the last day of each month at a configured
// time of day.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Tado3/Star-Space/internal/lib/timeutil"
)

// testModeInterval is the cycle length when the scheduler runs in test
// mode: a backup every minute, no last-day guard.
const testModeInterval = 60 * time.Second

// Clock abstracts wall time so the scheduling loop can be driven by a
// fake clock in tests.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Action is what a backup cycle actually does. A failed step aborts
// the rest of the cycle; the loop itself keeps going.
type Action interface {
	BackupDatabase(ctx context.Context) error
	BackupMedia(ctx context.Context) error
}

// Scheduler sleeps until the last day of the month at the configured
// time, re-checks the calendar, runs the backup and repeats.
type Scheduler struct {
	action   Action
	clock    Clock
	log      *slog.Logger
	hour     int
	minute   int
	testMode bool
	logFile  string
}

func NewScheduler(action Action, log *slog.Logger, hour, minute int, testMode bool, logFile string) *Scheduler {
	return &Scheduler{
		action:   action,
		clock:    RealClock{},
		log:      log,
		hour:     hour,
		minute:   minute,
		testMode: testMode,
		logFile:  logFile,
	}
}

// appendLog writes one timestamped line to the scheduler's log file.
// Best-effort: the backup job must not die because a log line could
// not be written.
func (s *Scheduler) appendLog(line string) {
	if s.logFile == "" {
		return
	}
	f, err := os.OpenFile(s.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.log.Warn("cannot open backup log file", slog.String("path", s.logFile), slog.Any("err", err))
		return
	}
	defer f.Close()
	stamp := s.clock.Now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(f, "[%s] %s\n", stamp, line); err != nil {
		s.log.Warn("cannot write backup log file", slog.String("path", s.logFile), slog.Any("err", err))
	}
}

// runCycle performs one backup: database first, then media. The first
// failed step aborts the rest of the cycle; the scheduling loop is
// never stopped by it.
func (s *Scheduler) runCycle(ctx context.Context) {
	runID := uuid.NewString()
	log := s.log.With(slog.String("run_id", runID))

	log.Info("backup run started")
	s.appendLog("backup run " + runID + " started")

	if err := s.action.BackupDatabase(ctx); err != nil {
		log.Error("database backup failed, aborting cycle", slog.Any("err", err))
		s.appendLog("database backup failed: " + err.Error())
		s.appendLog("backup run " + runID + " aborted")
		return
	}
	log.Info("database backup completed")
	s.appendLog("database backup completed")

	if err := s.action.BackupMedia(ctx); err != nil {
		log.Error("media backup failed, aborting cycle", slog.Any("err", err))
		s.appendLog("media backup failed: " + err.Error())
		s.appendLog("backup run " + runID + " aborted")
		return
	}
	log.Info("media backup completed")
	s.appendLog("media backup completed")

	log.Info("backup run finished")
	s.appendLog("backup run " + runID + " finished")
}

// Run drives the scheduling loop until ctx is cancelled. In test mode
// it backs up once per minute with no calendar check; otherwise it
// sleeps until the next last-day-of-month at the configured time,
// re-checks that it really is the last day and only then runs.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("backup scheduler started",
		slog.String("at", fmt.Sprintf("%02d:%02d", s.hour, s.minute)),
		slog.Bool("test_mode", s.testMode),
	)
	s.appendLog("backup scheduler started")

	for {
		if s.testMode {
			s.runCycle(ctx)
			if err := s.clock.Sleep(ctx, testModeInterval); err != nil {
				s.appendLog("backup scheduler stopped")
				return err
			}
			continue
		}

		now := s.clock.Now()
		target := timeutil.NextLastDay(now, s.hour, s.minute)
		s.log.Info("next backup scheduled", slog.Time("at", target))
		s.appendLog("next backup scheduled for " + target.Format("2006-01-02 15:04"))

		if err := s.clock.Sleep(ctx, target.Sub(now)); err != nil {
			s.appendLog("backup scheduler stopped")
			return err
		}

		// The sleep may overshoot or the clock may have jumped, so
		// confirm the calendar before dumping anything.
		if !timeutil.IsLastDayOfMonth(s.clock.Now()) {
			s.log.Warn("woke up on a day that is not the last of the month, rescheduling")
			s.appendLog("guard check failed, rescheduling")
			continue
		}

		s.runCycle(ctx)

		// Step past the target minute so the next computation lands on
		// the following month.
		if err := s.clock.Sleep(ctx, time.Minute); err != nil {
			s.appendLog("backup scheduler stopped")
			return err
		}
	}
}
