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
	ErrMuscleGroupNotFound = errors.New("muscle group not found")
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrValidationFailed    = errors.New("validation failed")
	ErrCatalogEmpty        = errors.New("exercise catalog is empty")
)

// CatalogService manages the muscle group / exercise reference data,
// favorites and the exercise of the day.
type CatalogService interface {
	CreateMuscleGroup(ctx context.Context, name string) (*domain.MuscleGroup, error)
	GetMuscleGroup(ctx context.Context, id int64) (*domain.MuscleGroup, error)
	ListMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error)
	UpdateMuscleGroup(ctx context.Context, id int64, name string) (*domain.MuscleGroup, error)
	DeleteMuscleGroup(ctx context.Context, id int64) error

	CreateExercise(ctx context.Context, name string, muscleGroupID int64, description string, t domain.ExerciseType) (*domain.Exercise, error)
	GetExercise(ctx context.Context, id int64) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, id int64, name string, muscleGroupID int64, description string, t domain.ExerciseType) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id int64) error
	ExerciseTypes() []domain.ExerciseType

	ListFavorites(ctx context.Context, userID int64) ([]domain.FavoriteExercise, error)
	ToggleFavorite(ctx context.Context, userID, exerciseID int64) (favorited bool, err error)

	ExerciseOfTheDay(ctx context.Context, date time.Time) (*domain.ExerciseOfTheDay, error)
}

type catalogService struct {
	muscleGroupRepo repository.MuscleGroupRepository
	exerciseRepo    repository.ExerciseRepository
	favoriteRepo    repository.FavoriteRepository
	eodRepo         repository.ExerciseOfTheDayRepository
}

func NewCatalogService(
	muscleGroupRepo repository.MuscleGroupRepository,
	exerciseRepo repository.ExerciseRepository,
	favoriteRepo repository.FavoriteRepository,
	eodRepo repository.ExerciseOfTheDayRepository,
) CatalogService {
	return &catalogService{
		muscleGroupRepo: muscleGroupRepo,
		exerciseRepo:    exerciseRepo,
		favoriteRepo:    favoriteRepo,
		eodRepo:         eodRepo,
	}
}

func (s *catalogService) CreateMuscleGroup(ctx context.Context, name string) (*domain.MuscleGroup, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	mg := &domain.MuscleGroup{Name: name}
	if _, err := s.muscleGroupRepo.Create(ctx, mg); err != nil {
		return nil, err
	}
	return mg, nil
}

func (s *catalogService) GetMuscleGroup(ctx context.Context, id int64) (*domain.MuscleGroup, error) {
	mg, err := s.muscleGroupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, err
	}
	return mg, nil
}

func (s *catalogService) ListMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	return s.muscleGroupRepo.List(ctx)
}

func (s *catalogService) UpdateMuscleGroup(ctx context.Context, id int64, name string) (*domain.MuscleGroup, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	mg := &domain.MuscleGroup{ID: id, Name: name}
	if err := s.muscleGroupRepo.Update(ctx, mg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, err
	}
	return mg, nil
}

func (s *catalogService) DeleteMuscleGroup(ctx context.Context, id int64) error {
	err := s.muscleGroupRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMuscleGroupNotFound
	}
	return err
}

func (s *catalogService) CreateExercise(ctx context.Context, name string, muscleGroupID int64, description string, t domain.ExerciseType) (*domain.Exercise, error) {
	if name == "" || !t.IsValid() {
		return nil, ErrValidationFailed
	}
	if _, err := s.muscleGroupRepo.GetByID(ctx, muscleGroupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, err
	}

	exercise := &domain.Exercise{
		Name:          name,
		MuscleGroupID: muscleGroupID,
		Description:   description,
		Type:          t,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) GetExercise(ctx context.Context, id int64) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

func (s *catalogService) UpdateExercise(ctx context.Context, id int64, name string, muscleGroupID int64, description string, t domain.ExerciseType) (*domain.Exercise, error) {
	if name == "" || !t.IsValid() {
		return nil, ErrValidationFailed
	}
	exercise := &domain.Exercise{
		ID:            id,
		Name:          name,
		MuscleGroupID: muscleGroupID,
		Description:   description,
		Type:          t,
	}
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) DeleteExercise(ctx context.Context, id int64) error {
	err := s.exerciseRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

func (s *catalogService) ExerciseTypes() []domain.ExerciseType {
	return domain.ExerciseTypes()
}

func (s *catalogService) ListFavorites(ctx context.Context, userID int64) ([]domain.FavoriteExercise, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}

// ToggleFavorite flips the favorite state for the pair; applying it
// twice returns to the original state.
func (s *catalogService) ToggleFavorite(ctx context.Context, userID, exerciseID int64) (bool, error) {
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrExerciseNotFound
		}
		return false, err
	}
	return s.favoriteRepo.Toggle(ctx, userID, exerciseID)
}

// ExerciseOfTheDay returns the featured exercise for the date,
// assigning a random one on first read.
func (s *catalogService) ExerciseOfTheDay(ctx context.Context, date time.Time) (*domain.ExerciseOfTheDay, error) {
	candidate, err := s.exerciseRepo.Random(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCatalogEmpty
		}
		return nil, err
	}

	eod, err := s.eodRepo.GetOrCreate(ctx, date, candidate.ID)
	if err != nil {
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, eod.ExerciseID)
	if err != nil {
		return nil, err
	}
	eod.Exercise = exercise
	return eod, nil
}
