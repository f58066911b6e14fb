package repository

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetProfilePicture(ctx context.Context, id int64, url string) error
	// Delete removes the user; the schema cascades through everything
	// the user owns.
	Delete(ctx context.Context, id int64) error
}

// MuscleGroupRepository manages the muscle group catalog.
type MuscleGroupRepository interface {
	Create(ctx context.Context, mg *domain.MuscleGroup) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.MuscleGroup, error)
	List(ctx context.Context) ([]domain.MuscleGroup, error)
	Update(ctx context.Context, mg *domain.MuscleGroup) error
	Delete(ctx context.Context, id int64) error
	// UpsertByName inserts the group or returns the existing row's ID;
	// seeding is idempotent on the name.
	UpsertByName(ctx context.Context, name string) (int64, error)
}

// ExerciseRepository manages the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	ListByType(ctx context.Context, t domain.ExerciseType) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id int64) error
	UpsertByName(ctx context.Context, exercise *domain.Exercise) (int64, error)
	// Random picks one exercise at random, used for the exercise of
	// the day assignment.
	Random(ctx context.Context) (*domain.Exercise, error)
}

// RoutineRepository manages routines and their exercise entries.
type RoutineRepository interface {
	// Create inserts the routine and its entries in one transaction.
	Create(ctx context.Context, routine *domain.Routine) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*domain.Routine, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Routine, error)
	// FirstByUser returns the user's oldest routine, for the
	// "today's routine" endpoint.
	FirstByUser(ctx context.Context, userID int64) (*domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine, userID int64) error
	Delete(ctx context.Context, id, userID int64) error

	CreateExercise(ctx context.Context, re *domain.RoutineExercise, userID int64) (int64, error)
	GetExerciseByID(ctx context.Context, id, userID int64) (*domain.RoutineExercise, error)
	ListExercisesByUser(ctx context.Context, userID int64) ([]domain.RoutineExercise, error)
	UpdateExercise(ctx context.Context, re *domain.RoutineExercise, userID int64) error
	DeleteExercise(ctx context.Context, id, userID int64) error
	CountExercisesByUser(ctx context.Context, userID int64) (int, error)
}

// WorkoutRepository manages completed workouts and their exercises.
type WorkoutRepository interface {
	// Create inserts the workout and its completed exercises in one
	// transaction.
	Create(ctx context.Context, workout *domain.CompletedWorkout) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*domain.CompletedWorkout, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CompletedWorkout, error)
	Delete(ctx context.Context, id, userID int64) error

	CreateExercise(ctx context.Context, ce *domain.CompletedExercise, userID int64) (int64, error)
	ListExercisesByUser(ctx context.Context, userID int64) ([]domain.CompletedExercise, error)
	UpdateExercise(ctx context.Context, ce *domain.CompletedExercise, userID int64) error
	DeleteExercise(ctx context.Context, id, userID int64) error
	// CountExercisesCompletedOn counts completed exercises a user
	// logged on the given calendar date, for the missed-exercise job.
	CountExercisesCompletedOn(ctx context.Context, userID int64, date time.Time) (int, error)

	// ListSummariesBetween returns one row per completed workout whose
	// start time falls in [from, to], joined with routine name and
	// exercise count. Input for the progress aggregator.
	ListSummariesBetween(ctx context.Context, userID int64, from, to time.Time) ([]domain.WorkoutSummary, error)
}

// ChallengeRepository manages workout challenges and participation.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *domain.WorkoutChallenge, exerciseIDs []int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkoutChallenge, error)
	List(ctx context.Context) ([]domain.WorkoutChallenge, error)
	Delete(ctx context.Context, id int64) error

	// Join creates the user challenge plus one incomplete per-exercise
	// row for every exercise of the challenge, atomically. If the user
	// already joined, the existing row is returned with created=false
	// and nothing is modified.
	Join(ctx context.Context, userID, challengeID int64) (uc *domain.UserChallenge, created bool, err error)
	GetUserChallenge(ctx context.Context, id, userID int64) (*domain.UserChallenge, error)
	ListUserChallenges(ctx context.Context, userID int64) ([]domain.UserChallenge, error)
	ListUserChallengeExercises(ctx context.Context, userChallengeID int64) ([]domain.UserChallengeExercise, error)
	// CompleteExercise marks the per-exercise row complete. Returns
	// changed=false when the row was already complete. ErrNotFound when
	// the exercise is not part of the joined challenge.
	CompleteExercise(ctx context.Context, userChallengeID, exerciseID int64, at time.Time) (changed bool, err error)
	CountCompletedExercises(ctx context.Context, userChallengeID int64) (int, error)
	// UpdateProgress persists the progress counter and the completed
	// flag. The flag is only ever raised, never cleared.
	UpdateProgress(ctx context.Context, userChallengeID int64, progress int, completed bool) error
}

// ReminderRepository manages reminders and the sweep queue.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*domain.Reminder, error)
	ListUnsentByUser(ctx context.Context, userID int64) ([]domain.Reminder, error)
	ListUnsentByUserOn(ctx context.Context, userID int64, date time.Time) ([]domain.Reminder, error)
	Update(ctx context.Context, reminder *domain.Reminder, userID int64) error
	Delete(ctx context.Context, id, userID int64) error

	ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	MarkSent(ctx context.Context, id int64) error
}

// FavoriteRepository manages the user/exercise favorites join table.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.FavoriteExercise, error)
	// Toggle flips the favorite state and reports the resulting state.
	Toggle(ctx context.Context, userID, exerciseID int64) (favorited bool, err error)
}

// ExerciseOfTheDayRepository manages the daily featured exercise.
type ExerciseOfTheDayRepository interface {
	// GetOrCreate returns the row for the date, inserting one with the
	// given exercise if none exists yet. The unique date constraint
	// makes concurrent first reads converge on a single row.
	GetOrCreate(ctx context.Context, date time.Time, exerciseID int64) (*domain.ExerciseOfTheDay, error)
}
