package service

import (
	"context"
	"errors"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRoutineNotFound         = errors.New("routine not found")
	ErrRoutineExerciseNotFound = errors.New("routine exercise not found")
)

// RoutineExerciseInput is one target entry of a routine create/update.
type RoutineExerciseInput struct {
	ExerciseID int64    `json:"exerciseId" binding:"required"`
	Sets       *int     `json:"sets"`
	Reps       *int     `json:"reps"`
	Duration   *int     `json:"duration"`
	Distance   *float64 `json:"distance"`
}

// RoutineService manages routines and their exercise entries, always
// scoped to the owning user.
type RoutineService interface {
	CreateRoutine(ctx context.Context, userID int64, name string, exercises []RoutineExerciseInput) (*domain.Routine, error)
	GetRoutine(ctx context.Context, id, userID int64) (*domain.Routine, error)
	ListRoutines(ctx context.Context, userID int64) ([]domain.Routine, error)
	// TodayRoutine returns the user's first routine, the one the
	// tracker treats as today's plan.
	TodayRoutine(ctx context.Context, userID int64) (*domain.Routine, error)
	UpdateRoutine(ctx context.Context, id, userID int64, name string) (*domain.Routine, error)
	DeleteRoutine(ctx context.Context, id, userID int64) error

	AddRoutineExercise(ctx context.Context, userID, routineID int64, input RoutineExerciseInput) (*domain.RoutineExercise, error)
	ListRoutineExercises(ctx context.Context, userID int64) ([]domain.RoutineExercise, error)
	UpdateRoutineExercise(ctx context.Context, id, userID int64, input RoutineExerciseInput) (*domain.RoutineExercise, error)
	DeleteRoutineExercise(ctx context.Context, id, userID int64) error
}

type routineService struct {
	routineRepo  repository.RoutineRepository
	exerciseRepo repository.ExerciseRepository
}

func NewRoutineService(routineRepo repository.RoutineRepository, exerciseRepo repository.ExerciseRepository) RoutineService {
	return &routineService{
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateRoutine validates every referenced exercise before the routine
// and its entries are inserted in one transaction.
func (s *routineService) CreateRoutine(ctx context.Context, userID int64, name string, exercises []RoutineExerciseInput) (*domain.Routine, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	for _, input := range exercises {
		if _, err := s.exerciseRepo.GetByID(ctx, input.ExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
	}

	routine := &domain.Routine{
		UserID:    userID,
		Name:      name,
		Exercises: make([]domain.RoutineExercise, len(exercises)),
	}
	for i, input := range exercises {
		routine.Exercises[i] = domain.RoutineExercise{
			ExerciseID: input.ExerciseID,
			Sets:       input.Sets,
			Reps:       input.Reps,
			Duration:   input.Duration,
			Distance:   input.Distance,
		}
	}

	if _, err := s.routineRepo.Create(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *routineService) GetRoutine(ctx context.Context, id, userID int64) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *routineService) ListRoutines(ctx context.Context, userID int64) ([]domain.Routine, error) {
	return s.routineRepo.ListByUser(ctx, userID)
}

func (s *routineService) TodayRoutine(ctx context.Context, userID int64) (*domain.Routine, error) {
	routine, err := s.routineRepo.FirstByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *routineService) UpdateRoutine(ctx context.Context, id, userID int64, name string) (*domain.Routine, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	routine := &domain.Routine{ID: id, UserID: userID, Name: name}
	if err := s.routineRepo.Update(ctx, routine, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return s.GetRoutine(ctx, id, userID)
}

func (s *routineService) DeleteRoutine(ctx context.Context, id, userID int64) error {
	err := s.routineRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRoutineNotFound
	}
	return err
}

func (s *routineService) AddRoutineExercise(ctx context.Context, userID, routineID int64, input RoutineExerciseInput) (*domain.RoutineExercise, error) {
	if _, err := s.exerciseRepo.GetByID(ctx, input.ExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	re := &domain.RoutineExercise{
		RoutineID:  routineID,
		ExerciseID: input.ExerciseID,
		Sets:       input.Sets,
		Reps:       input.Reps,
		Duration:   input.Duration,
		Distance:   input.Distance,
	}
	if _, err := s.routineRepo.CreateExercise(ctx, re, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return re, nil
}

func (s *routineService) ListRoutineExercises(ctx context.Context, userID int64) ([]domain.RoutineExercise, error) {
	return s.routineRepo.ListExercisesByUser(ctx, userID)
}

func (s *routineService) UpdateRoutineExercise(ctx context.Context, id, userID int64, input RoutineExerciseInput) (*domain.RoutineExercise, error) {
	re, err := s.routineRepo.GetExerciseByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineExerciseNotFound
		}
		return nil, err
	}

	re.ExerciseID = input.ExerciseID
	re.Sets = input.Sets
	re.Reps = input.Reps
	re.Duration = input.Duration
	re.Distance = input.Distance

	if err := s.routineRepo.UpdateExercise(ctx, re, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineExerciseNotFound
		}
		return nil, err
	}
	return re, nil
}

func (s *routineService) DeleteRoutineExercise(ctx context.Context, id, userID int64) error {
	err := s.routineRepo.DeleteExercise(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRoutineExerciseNotFound
	}
	return err
}
