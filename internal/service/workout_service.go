package service

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound           = errors.New("completed workout not found")
	ErrCompletedExerciseNotFound = errors.New("completed exercise not found")
	ErrInvalidWorkoutWindow      = errors.New("completion time must not precede start time")
)

// CompletedExerciseInput records the actual outcome for one routine
// exercise when logging a workout.
type CompletedExerciseInput struct {
	RoutineExerciseID int64    `json:"routineExerciseId" binding:"required"`
	SetsCompleted     *int     `json:"setsCompleted"`
	RepsCompleted     *int     `json:"repsCompleted"`
	DurationCompleted *int     `json:"durationCompleted"`
	DistanceCompleted *float64 `json:"distanceCompleted"`
	Notes             string   `json:"notes"`
}

// WorkoutService manages the completed workout log.
type WorkoutService interface {
	LogWorkout(ctx context.Context, userID, routineID int64, startedAt, completedAt time.Time, caloriesBurned int, notes string, exercises []CompletedExerciseInput) (*domain.CompletedWorkout, error)
	GetWorkout(ctx context.Context, id, userID int64) (*domain.CompletedWorkout, error)
	ListWorkouts(ctx context.Context, userID int64) ([]domain.CompletedWorkout, error)
	DeleteWorkout(ctx context.Context, id, userID int64) error

	AddCompletedExercise(ctx context.Context, userID, workoutID int64, input CompletedExerciseInput) (*domain.CompletedExercise, error)
	ListCompletedExercises(ctx context.Context, userID int64) ([]domain.CompletedExercise, error)
	UpdateCompletedExercise(ctx context.Context, id, userID int64, input CompletedExerciseInput) (*domain.CompletedExercise, error)
	DeleteCompletedExercise(ctx context.Context, id, userID int64) error
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	routineRepo repository.RoutineRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, routineRepo repository.RoutineRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		routineRepo: routineRepo,
	}
}

// LogWorkout records a completed workout. The duration is derived from
// the start/completion timestamps, never taken from the client.
func (s *workoutService) LogWorkout(ctx context.Context, userID, routineID int64, startedAt, completedAt time.Time, caloriesBurned int, notes string, exercises []CompletedExerciseInput) (*domain.CompletedWorkout, error) {
	if _, err := s.routineRepo.GetByID(ctx, routineID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if completedAt.Before(startedAt) {
		return nil, ErrInvalidWorkoutWindow
	}

	workout := &domain.CompletedWorkout{
		UserID:          userID,
		RoutineID:       routineID,
		StartedAt:       startedAt,
		CompletedAt:     completedAt,
		DurationSeconds: int64(completedAt.Sub(startedAt).Seconds()),
		CaloriesBurned:  caloriesBurned,
		Notes:           notes,
		Exercises:       make([]domain.CompletedExercise, len(exercises)),
	}
	for i, input := range exercises {
		workout.Exercises[i] = domain.CompletedExercise{
			RoutineExerciseID: input.RoutineExerciseID,
			SetsCompleted:     input.SetsCompleted,
			RepsCompleted:     input.RepsCompleted,
			DurationCompleted: input.DurationCompleted,
			DistanceCompleted: input.DistanceCompleted,
			Notes:             input.Notes,
		}
	}

	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, id, userID int64) (*domain.CompletedWorkout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID int64) ([]domain.CompletedWorkout, error) {
	return s.workoutRepo.ListByUser(ctx, userID)
}

func (s *workoutService) DeleteWorkout(ctx context.Context, id, userID int64) error {
	err := s.workoutRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

func (s *workoutService) AddCompletedExercise(ctx context.Context, userID, workoutID int64, input CompletedExerciseInput) (*domain.CompletedExercise, error) {
	ce := &domain.CompletedExercise{
		CompletedWorkoutID: workoutID,
		RoutineExerciseID:  input.RoutineExerciseID,
		SetsCompleted:      input.SetsCompleted,
		RepsCompleted:      input.RepsCompleted,
		DurationCompleted:  input.DurationCompleted,
		DistanceCompleted:  input.DistanceCompleted,
		Notes:              input.Notes,
	}
	if _, err := s.workoutRepo.CreateExercise(ctx, ce, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return ce, nil
}

func (s *workoutService) ListCompletedExercises(ctx context.Context, userID int64) ([]domain.CompletedExercise, error) {
	return s.workoutRepo.ListExercisesByUser(ctx, userID)
}

func (s *workoutService) UpdateCompletedExercise(ctx context.Context, id, userID int64, input CompletedExerciseInput) (*domain.CompletedExercise, error) {
	ce := &domain.CompletedExercise{
		ID:                id,
		RoutineExerciseID: input.RoutineExerciseID,
		SetsCompleted:     input.SetsCompleted,
		RepsCompleted:     input.RepsCompleted,
		DurationCompleted: input.DurationCompleted,
		DistanceCompleted: input.DistanceCompleted,
		Notes:             input.Notes,
	}
	if err := s.workoutRepo.UpdateExercise(ctx, ce, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompletedExerciseNotFound
		}
		return nil, err
	}
	return ce, nil
}

func (s *workoutService) DeleteCompletedExercise(ctx context.Context, id, userID int64) error {
	err := s.workoutRepo.DeleteExercise(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCompletedExerciseNotFound
	}
	return err
}
