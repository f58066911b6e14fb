package seed

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

type memCatalog struct {
	nextMGID int64
	groups   map[string]int64
}

func newMemCatalog() *memCatalog {
	return &memCatalog{groups: map[string]int64{}}
}

// MuscleGroupRepository

func (m *memCatalog) Create(_ context.Context, mg *domain.MuscleGroup) (int64, error) {
	m.nextMGID++
	mg.ID = m.nextMGID
	m.groups[mg.Name] = mg.ID
	return mg.ID, nil
}

func (m *memCatalog) GetByID(context.Context, int64) (*domain.MuscleGroup, error) {
	return nil, repository.ErrNotFound
}

func (m *memCatalog) List(context.Context) ([]domain.MuscleGroup, error) { return nil, nil }

func (m *memCatalog) Update(context.Context, *domain.MuscleGroup) error { return nil }

func (m *memCatalog) Delete(context.Context, int64) error { return nil }

func (m *memCatalog) UpsertByName(ctx context.Context, name string) (int64, error) {
	if id, ok := m.groups[name]; ok {
		return id, nil
	}
	return m.Create(ctx, &domain.MuscleGroup{Name: name})
}

type memExercises struct {
	nextID    int64
	exercises map[string]*domain.Exercise
}

func newMemExercises() *memExercises {
	return &memExercises{exercises: map[string]*domain.Exercise{}}
}

func (m *memExercises) Create(_ context.Context, e *domain.Exercise) (int64, error) {
	m.nextID++
	e.ID = m.nextID
	copied := *e
	m.exercises[e.Name] = &copied
	return e.ID, nil
}

func (m *memExercises) GetByID(context.Context, int64) (*domain.Exercise, error) {
	return nil, repository.ErrNotFound
}

func (m *memExercises) List(context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0, len(m.exercises))
	for _, e := range m.exercises {
		out = append(out, *e)
	}
	return out, nil
}

func (m *memExercises) ListByType(_ context.Context, t domain.ExerciseType) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, e := range m.exercises {
		if e.Type == t {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memExercises) Update(context.Context, *domain.Exercise) error { return nil }

func (m *memExercises) Delete(context.Context, int64) error { return nil }

func (m *memExercises) UpsertByName(ctx context.Context, e *domain.Exercise) (int64, error) {
	if existing, ok := m.exercises[e.Name]; ok {
		e.ID = existing.ID
		return existing.ID, nil
	}
	return m.Create(ctx, e)
}

func (m *memExercises) Random(context.Context) (*domain.Exercise, error) {
	for _, e := range m.exercises {
		copied := *e
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

type memChallenges struct {
	nextID  int64
	created []*domain.WorkoutChallenge
}

func (m *memChallenges) Create(_ context.Context, c *domain.WorkoutChallenge, exerciseIDs []int64) (int64, error) {
	m.nextID++
	c.ID = m.nextID
	c.Exercises = make([]domain.Exercise, 0, len(exerciseIDs))
	for _, id := range exerciseIDs {
		c.Exercises = append(c.Exercises, domain.Exercise{ID: id})
	}
	copied := *c
	m.created = append(m.created, &copied)
	return c.ID, nil
}

func (m *memChallenges) GetByID(context.Context, int64) (*domain.WorkoutChallenge, error) {
	return nil, repository.ErrNotFound
}

func (m *memChallenges) List(context.Context) ([]domain.WorkoutChallenge, error) { return nil, nil }

func (m *memChallenges) Delete(context.Context, int64) error { return nil }

func (m *memChallenges) Join(context.Context, int64, int64) (*domain.UserChallenge, bool, error) {
	return nil, false, repository.ErrNotFound
}

func (m *memChallenges) GetUserChallenge(context.Context, int64, int64) (*domain.UserChallenge, error) {
	return nil, repository.ErrNotFound
}

func (m *memChallenges) ListUserChallenges(context.Context, int64) ([]domain.UserChallenge, error) {
	return nil, nil
}

func (m *memChallenges) ListUserChallengeExercises(context.Context, int64) ([]domain.UserChallengeExercise, error) {
	return nil, nil
}

func (m *memChallenges) CompleteExercise(context.Context, int64, int64, time.Time) (bool, error) {
	return false, repository.ErrNotFound
}

func (m *memChallenges) CountCompletedExercises(context.Context, int64) (int, error) { return 0, nil }

func (m *memChallenges) UpdateProgress(context.Context, int64, int, bool) error { return nil }

func testSeeder() (*Seeder, *memCatalog, *memExercises, *memChallenges) {
	groups := newMemCatalog()
	exercises := newMemExercises()
	challenges := &memChallenges{}
	s := NewSeeder(groups, exercises, challenges)
	s.rng = rand.New(rand.NewSource(1))
	s.now = func() time.Time { return time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC) }
	return s, groups, exercises, challenges
}

func TestSeedCatalog(t *testing.T) {
	s, groups, exercises, _ := testSeeder()

	count, err := s.SeedCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(catalog), count)
	assert.Len(t, groups.groups, 16)

	bench, ok := exercises.exercises["Bench Press"]
	require.True(t, ok)
	assert.Equal(t, domain.TypeStrength, bench.Type)
	assert.Equal(t, groups.groups["Chest"], bench.MuscleGroupID)
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	s, groups, exercises, _ := testSeeder()
	ctx := context.Background()

	_, err := s.SeedCatalog(ctx)
	require.NoError(t, err)
	firstGroups := len(groups.groups)
	firstExercises := len(exercises.exercises)

	_, err = s.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstGroups, len(groups.groups))
	assert.Equal(t, firstExercises, len(exercises.exercises))
}

func TestGenerateChallenges(t *testing.T) {
	s, _, _, challenges := testSeeder()
	ctx := context.Background()

	_, err := s.SeedCatalog(ctx)
	require.NoError(t, err)

	created, err := s.GenerateChallenges(ctx)
	require.NoError(t, err)
	// The seeded catalog has no Balance exercises, so that type is
	// skipped.
	assert.Equal(t, 5, created)
	require.Len(t, challenges.created, 5)

	for _, c := range challenges.created {
		assert.Contains(t, c.Name, "Challenge")
		assert.GreaterOrEqual(t, c.Goal, 15)
		assert.LessOrEqual(t, c.Goal, 25)
		assert.LessOrEqual(t, len(c.Exercises), 5)
		assert.NotEmpty(t, c.Exercises)
		assert.Equal(t, c.StartDate.AddDate(0, 0, 30), c.EndDate)
	}
}
