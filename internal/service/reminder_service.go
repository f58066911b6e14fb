package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// --- Error Definitions ---
var (
	ErrReminderNotFound = errors.New("reminder not found")
)

// missedExerciseMessage is the nudge created for users who fell short
// of their routine the previous day.
const missedExerciseMessage = "You missed some exercises yesterday. Don't forget to catch up!"

// Notifier delivers a reminder to the user. The shipped implementation
// logs; real delivery (mail, push) plugs in behind this interface.
type Notifier interface {
	Notify(ctx context.Context, reminder domain.Reminder) error
}

// LogNotifier writes the notification to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, reminder domain.Reminder) error {
	logrus.WithFields(logrus.Fields{
		"reminder_id": reminder.ID,
		"user_id":     reminder.UserID,
	}).Info(reminder.Message)
	return nil
}

// ReminderService manages reminders and runs the periodic sweeps.
type ReminderService interface {
	CreateReminder(ctx context.Context, userID int64, routineID *int64, reminderTime time.Time, message string) (*domain.Reminder, error)
	ListReminders(ctx context.Context, userID int64) ([]domain.Reminder, error)
	TodayReminders(ctx context.Context, userID int64) ([]domain.Reminder, error)
	UpdateReminder(ctx context.Context, id, userID int64, routineID *int64, reminderTime time.Time, message string) (*domain.Reminder, error)
	DeleteReminder(ctx context.Context, id, userID int64) error

	// Sweep dispatches every due unsent reminder and returns how many
	// were sent. The sent flag is raised only after the notifier
	// succeeds, so a failed dispatch is retried on the next sweep.
	Sweep(ctx context.Context, now time.Time) (int, error)

	// GenerateMissedExerciseReminders creates a catch-up reminder for
	// every user whose completed-exercise count for yesterday fell
	// short of their routine-exercise total.
	GenerateMissedExerciseReminders(ctx context.Context, now time.Time) (int, error)
}

type reminderService struct {
	reminderRepo repository.ReminderRepository
	routineRepo  repository.RoutineRepository
	workoutRepo  repository.WorkoutRepository
	userRepo     repository.UserRepository
	notifier     Notifier
}

func NewReminderService(
	reminderRepo repository.ReminderRepository,
	routineRepo repository.RoutineRepository,
	workoutRepo repository.WorkoutRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		routineRepo:  routineRepo,
		workoutRepo:  workoutRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (s *reminderService) CreateReminder(ctx context.Context, userID int64, routineID *int64, reminderTime time.Time, message string) (*domain.Reminder, error) {
	if message == "" || reminderTime.IsZero() {
		return nil, ErrValidationFailed
	}
	if routineID != nil {
		if _, err := s.routineRepo.GetByID(ctx, *routineID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrRoutineNotFound
			}
			return nil, err
		}
	}

	reminder := &domain.Reminder{
		UserID:       userID,
		RoutineID:    routineID,
		ReminderTime: reminderTime,
		Message:      message,
	}
	if _, err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) ListReminders(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	return s.reminderRepo.ListUnsentByUser(ctx, userID)
}

func (s *reminderService) TodayReminders(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	return s.reminderRepo.ListUnsentByUserOn(ctx, userID, time.Now().UTC())
}

func (s *reminderService) UpdateReminder(ctx context.Context, id, userID int64, routineID *int64, reminderTime time.Time, message string) (*domain.Reminder, error) {
	if message == "" || reminderTime.IsZero() {
		return nil, ErrValidationFailed
	}
	reminder := &domain.Reminder{
		ID:           id,
		UserID:       userID,
		RoutineID:    routineID,
		ReminderTime: reminderTime,
		Message:      message,
	}
	if err := s.reminderRepo.Update(ctx, reminder, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, id, userID int64) error {
	err := s.reminderRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrReminderNotFound
	}
	return err
}

func (s *reminderService) Sweep(ctx context.Context, now time.Time) (int, error) {
	due, err := s.reminderRepo.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, reminder := range due {
		if err := s.notifier.Notify(ctx, reminder); err != nil {
			// Leave the flag down so the next sweep retries.
			logrus.WithError(err).WithField("reminder_id", reminder.ID).Warn("reminder dispatch failed")
			continue
		}
		if err := s.reminderRepo.MarkSent(ctx, reminder.ID); err != nil {
			logrus.WithError(err).WithField("reminder_id", reminder.ID).Error("failed to mark reminder sent")
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *reminderService) GenerateMissedExerciseReminders(ctx context.Context, now time.Time) (int, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	yesterday := now.UTC().AddDate(0, 0, -1)
	created := 0
	for _, user := range users {
		total, err := s.routineRepo.CountExercisesByUser(ctx, user.ID)
		if err != nil {
			return created, err
		}
		if total == 0 {
			continue
		}

		completed, err := s.workoutRepo.CountExercisesCompletedOn(ctx, user.ID, yesterday)
		if err != nil {
			return created, err
		}
		if completed >= total {
			continue
		}

		reminder := &domain.Reminder{
			UserID:       user.ID,
			ReminderTime: now.UTC(),
			Message:      missedExerciseMessage,
		}
		if _, err := s.reminderRepo.Create(ctx, reminder); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
