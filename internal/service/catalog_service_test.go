package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/domain"
)

type catalogFixture struct {
	svc          CatalogService
	exerciseRepo *fakeExerciseRepo
	groupRepo    *fakeMuscleGroupRepo
	favoriteRepo *fakeFavoriteRepo
	eodRepo      *fakeEodRepo
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		exerciseRepo: newFakeExerciseRepo(),
		groupRepo:    newFakeMuscleGroupRepo(),
		favoriteRepo: newFakeFavoriteRepo(),
		eodRepo:      newFakeEodRepo(),
	}
	f.svc = NewCatalogService(f.groupRepo, f.exerciseRepo, f.favoriteRepo, f.eodRepo)
	return f
}

func (f *catalogFixture) addExercise(t *testing.T, name string, typ domain.ExerciseType) *domain.Exercise {
	t.Helper()
	ctx := context.Background()

	mg, err := f.groupRepo.UpsertByName(ctx, "Chest")
	require.NoError(t, err)

	exercise, err := f.svc.CreateExercise(ctx, name, mg, "", typ)
	require.NoError(t, err)
	return exercise
}

func TestCreateExercise_Validation(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	mg, err := f.svc.CreateMuscleGroup(ctx, "Back")
	require.NoError(t, err)

	_, err = f.svc.CreateExercise(ctx, "", mg.ID, "", domain.TypeStrength)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.svc.CreateExercise(ctx, "Rows", mg.ID, "", domain.ExerciseType("Underwater"))
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.svc.CreateExercise(ctx, "Rows", 999, "", domain.TypeStrength)
	assert.ErrorIs(t, err, ErrMuscleGroupNotFound)

	exercise, err := f.svc.CreateExercise(ctx, "Rows", mg.ID, "barbell rows", domain.TypeStrength)
	require.NoError(t, err)
	assert.NotZero(t, exercise.ID)
}

func TestExerciseTypes(t *testing.T) {
	f := newCatalogFixture()

	types := f.svc.ExerciseTypes()
	assert.Equal(t, []domain.ExerciseType{
		domain.TypeStrength,
		domain.TypeCardio,
		domain.TypeFlexibility,
		domain.TypeBalance,
		domain.TypePlyometric,
		domain.TypeBodyweight,
	}, types)
}

func TestToggleFavorite(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	exercise := f.addExercise(t, "Bench Press", domain.TypeStrength)

	favorited, err := f.svc.ToggleFavorite(ctx, 1, exercise.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorites, err := f.svc.ListFavorites(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, exercise.ID, favorites[0].ExerciseID)

	// Toggling twice returns to the original state.
	favorited, err = f.svc.ToggleFavorite(ctx, 1, exercise.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	favorites, err = f.svc.ListFavorites(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestToggleFavorite_UnknownExercise(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.ToggleFavorite(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestToggleFavorite_ScopedPerUser(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	exercise := f.addExercise(t, "Bench Press", domain.TypeStrength)

	_, err := f.svc.ToggleFavorite(ctx, 1, exercise.ID)
	require.NoError(t, err)

	// Another user's list is unaffected.
	favorites, err := f.svc.ListFavorites(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestExerciseOfTheDay_StableWithinDate(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.addExercise(t, "Bench Press", domain.TypeStrength)

	date := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)
	first, err := f.svc.ExerciseOfTheDay(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, first.Exercise)

	// The same date always yields the same assignment.
	second, err := f.svc.ExerciseOfTheDay(ctx, date.Add(6*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ExerciseID, second.ExerciseID)
	assert.Equal(t, first.ID, second.ID)
}

func TestExerciseOfTheDay_EmptyCatalog(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.ExerciseOfTheDay(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrCatalogEmpty)
}
