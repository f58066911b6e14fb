// Package jobs runs the periodic background sweeps: dispatching due
// reminders and generating missed-exercise nudges.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"

	"fittrack/internal/config"
	"fittrack/internal/service"
)

// Scheduler owns the cron instance running the reminder sweeps.
type Scheduler struct {
	cron            *cron.Cron
	reminderService service.ReminderService
}

// NewScheduler registers the sweeps on their configured cron specs.
func NewScheduler(cfg config.JobsConfig, reminderService service.ReminderService) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(),
		reminderService: reminderService,
	}

	if err := s.cron.AddFunc(cfg.ReminderSchedule, s.sweepReminders); err != nil {
		return nil, err
	}
	if err := s.cron.AddFunc(cfg.MissedExerciseSchedule, s.generateMissedExerciseReminders); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logrus.Info("background job scheduler started")
}

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logrus.Info("background job scheduler stopped")
}

func (s *Scheduler) sweepReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sent, err := s.reminderService.Sweep(ctx, time.Now().UTC())
	if err != nil {
		logrus.WithError(err).Error("reminder sweep failed")
		return
	}
	if sent > 0 {
		logrus.WithField("sent", sent).Info("reminders dispatched")
	}
}

func (s *Scheduler) generateMissedExerciseReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, err := s.reminderService.GenerateMissedExerciseReminders(ctx, time.Now().UTC())
	if err != nil {
		logrus.WithError(err).Error("missed-exercise reminder generation failed")
		return
	}
	if created > 0 {
		logrus.WithField("created", created).Info("missed-exercise reminders created")
	}
}
