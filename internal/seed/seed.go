// Package seed populates the reference catalog and generates workout
// challenges. Catalog seeding upserts on natural keys and can be rerun
// safely; challenge generation inserts a fresh batch on every run.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// catalogEntry is one seeded exercise.
type catalogEntry struct {
	Name        string
	MuscleGroup string
	Type        domain.ExerciseType
}

var muscleGroupNames = []string{
	"Chest",
	"Back",
	"Shoulders",
	"Biceps",
	"Triceps",
	"Forearms",
	"Quadriceps",
	"Hamstrings",
	"Calves",
	"Glutes",
	"Abs",
	"Obliques",
	"Lower Back",
	"Trapezius",
	"Cardiovascular",
	"Full Body",
}

var catalog = []catalogEntry{
	// Chest
	{"Bench Press", "Chest", domain.TypeStrength},
	{"Incline Bench Press", "Chest", domain.TypeStrength},
	{"Decline Bench Press", "Chest", domain.TypeStrength},
	{"Push-ups", "Chest", domain.TypeBodyweight},
	{"Dumbbell Flyes", "Chest", domain.TypeStrength},
	{"Cable Crossovers", "Chest", domain.TypeStrength},
	{"Dips", "Chest", domain.TypeBodyweight},

	// Back
	{"Pull-ups", "Back", domain.TypeBodyweight},
	{"Lat Pulldowns", "Back", domain.TypeStrength},
	{"Bent-over Rows", "Back", domain.TypeStrength},
	{"Deadlifts", "Back", domain.TypeStrength},
	{"T-Bar Rows", "Back", domain.TypeStrength},
	{"Face Pulls", "Back", domain.TypeStrength},
	{"Chin-ups", "Back", domain.TypeBodyweight},

	// Shoulders
	{"Overhead Press", "Shoulders", domain.TypeStrength},
	{"Lateral Raises", "Shoulders", domain.TypeStrength},
	{"Front Raises", "Shoulders", domain.TypeStrength},
	{"Reverse Flyes", "Shoulders", domain.TypeStrength},
	{"Shrugs", "Shoulders", domain.TypeStrength},
	{"Arnold Press", "Shoulders", domain.TypeStrength},

	// Biceps
	{"Barbell Curls", "Biceps", domain.TypeStrength},
	{"Dumbbell Curls", "Biceps", domain.TypeStrength},
	{"Hammer Curls", "Biceps", domain.TypeStrength},
	{"Preacher Curls", "Biceps", domain.TypeStrength},
	{"Concentration Curls", "Biceps", domain.TypeStrength},

	// Triceps
	{"Tricep Pushdowns", "Triceps", domain.TypeStrength},
	{"Skull Crushers", "Triceps", domain.TypeStrength},
	{"Overhead Tricep Extensions", "Triceps", domain.TypeStrength},
	{"Close-grip Bench Press", "Triceps", domain.TypeStrength},

	// Forearms
	{"Wrist Curls", "Forearms", domain.TypeStrength},
	{"Reverse Wrist Curls", "Forearms", domain.TypeStrength},
	{"Farmer's Walk", "Forearms", domain.TypeStrength},

	// Legs
	{"Squats", "Quadriceps", domain.TypeStrength},
	{"Leg Press", "Quadriceps", domain.TypeStrength},
	{"Lunges", "Quadriceps", domain.TypeBodyweight},
	{"Leg Extensions", "Quadriceps", domain.TypeStrength},
	{"Romanian Deadlifts", "Hamstrings", domain.TypeStrength},
	{"Leg Curls", "Hamstrings", domain.TypeStrength},
	{"Calf Raises", "Calves", domain.TypeStrength},
	{"Hip Thrusts", "Glutes", domain.TypeStrength},

	// Core
	{"Crunches", "Abs", domain.TypeBodyweight},
	{"Planks", "Abs", domain.TypeBodyweight},
	{"Russian Twists", "Obliques", domain.TypeBodyweight},
	{"Leg Raises", "Abs", domain.TypeBodyweight},
	{"Ab Wheel Rollouts", "Abs", domain.TypeBodyweight},

	// Lower back
	{"Hyperextensions", "Lower Back", domain.TypeBodyweight},
	{"Good Mornings", "Lower Back", domain.TypeStrength},

	// Trapezius
	{"Barbell Shrugs", "Trapezius", domain.TypeStrength},
	{"Upright Rows", "Trapezius", domain.TypeStrength},

	// Cardio
	{"Running", "Cardiovascular", domain.TypeCardio},
	{"Cycling", "Cardiovascular", domain.TypeCardio},
	{"Swimming", "Cardiovascular", domain.TypeCardio},
	{"Jumping Rope", "Cardiovascular", domain.TypeCardio},
	{"Rowing", "Cardiovascular", domain.TypeCardio},
	{"Elliptical", "Cardiovascular", domain.TypeCardio},
	{"Stair Climbing", "Cardiovascular", domain.TypeCardio},

	// Full body
	{"Burpees", "Full Body", domain.TypeBodyweight},
	{"Mountain Climbers", "Full Body", domain.TypeBodyweight},
	{"Thrusters", "Full Body", domain.TypeStrength},
	{"Turkish Get-ups", "Full Body", domain.TypeStrength},

	// Flexibility
	{"Yoga", "Full Body", domain.TypeFlexibility},
	{"Pilates", "Full Body", domain.TypeFlexibility},
	{"Static Stretching", "Full Body", domain.TypeFlexibility},
	{"Dynamic Stretching", "Full Body", domain.TypeFlexibility},

	// Plyometric
	{"Box Jumps", "Full Body", domain.TypePlyometric},
	{"Jump Squats", "Full Body", domain.TypePlyometric},
	{"Plyo Push-ups", "Full Body", domain.TypePlyometric},

	// Olympic lifts
	{"Clean and Jerk", "Full Body", domain.TypeStrength},
	{"Snatch", "Full Body", domain.TypeStrength},

	// Functional fitness
	{"Kettlebell Swings", "Full Body", domain.TypeStrength},
	{"Battle Ropes", "Full Body", domain.TypeStrength},
	{"Sled Pushes", "Full Body", domain.TypeStrength},
	{"Tire Flips", "Full Body", domain.TypeStrength},
}

var difficulties = []domain.Difficulty{
	domain.DifficultyEasy,
	domain.DifficultyMedium,
	domain.DifficultyHard,
}

// Seeder populates the catalog and generates challenges.
type Seeder struct {
	muscleGroupRepo repository.MuscleGroupRepository
	exerciseRepo    repository.ExerciseRepository
	challengeRepo   repository.ChallengeRepository
	rng             *rand.Rand
	now             func() time.Time
}

func NewSeeder(
	muscleGroupRepo repository.MuscleGroupRepository,
	exerciseRepo repository.ExerciseRepository,
	challengeRepo repository.ChallengeRepository,
) *Seeder {
	return &Seeder{
		muscleGroupRepo: muscleGroupRepo,
		exerciseRepo:    exerciseRepo,
		challengeRepo:   challengeRepo,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		now:             time.Now,
	}
}

// SeedCatalog upserts the muscle groups and exercises by name and
// returns how many exercises were written.
func (s *Seeder) SeedCatalog(ctx context.Context) (int, error) {
	groupIDs := make(map[string]int64, len(muscleGroupNames))
	for _, name := range muscleGroupNames {
		id, err := s.muscleGroupRepo.UpsertByName(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("seed muscle group %q: %w", name, err)
		}
		groupIDs[name] = id
	}

	count := 0
	for _, entry := range catalog {
		exercise := &domain.Exercise{
			Name:          entry.Name,
			MuscleGroupID: groupIDs[entry.MuscleGroup],
			Type:          entry.Type,
		}
		if _, err := s.exerciseRepo.UpsertByName(ctx, exercise); err != nil {
			return count, fmt.Errorf("seed exercise %q: %w", entry.Name, err)
		}
		count++
	}

	logrus.WithFields(logrus.Fields{
		"muscle_groups": len(groupIDs),
		"exercises":     count,
	}).Info("catalog seeded")
	return count, nil
}

// GenerateChallenges creates one 30-day challenge per exercise type
// that has at least one catalog exercise. Each challenge carries up to
// five randomly selected exercises of its type and a random goal
// between 15 and 25.
func (s *Seeder) GenerateChallenges(ctx context.Context) (int, error) {
	created := 0
	start := s.now().UTC().Truncate(24 * time.Hour)

	for _, t := range domain.ExerciseTypes() {
		exercises, err := s.exerciseRepo.ListByType(ctx, t)
		if err != nil {
			return created, fmt.Errorf("list %s exercises: %w", t, err)
		}
		if len(exercises) == 0 {
			continue
		}

		challenge := &domain.WorkoutChallenge{
			Name:         fmt.Sprintf("%s Challenge", t),
			Description:  fmt.Sprintf("A 30-day challenge focusing on %s exercises to improve your overall fitness.", strings.ToLower(string(t))),
			StartDate:    start,
			EndDate:      start.AddDate(0, 0, 30),
			Goal:         15 + s.rng.Intn(11),
			Difficulty:   difficulties[s.rng.Intn(len(difficulties))],
			ExerciseType: t,
		}

		ids := s.sampleExerciseIDs(exercises, 5)
		if _, err := s.challengeRepo.Create(ctx, challenge, ids); err != nil {
			return created, fmt.Errorf("create %s: %w", challenge.Name, err)
		}

		logrus.WithFields(logrus.Fields{
			"challenge": challenge.Name,
			"goal":      challenge.Goal,
			"exercises": len(ids),
		}).Info("challenge created")
		created++
	}
	return created, nil
}

// sampleExerciseIDs picks up to n distinct exercises at random.
func (s *Seeder) sampleExerciseIDs(exercises []domain.Exercise, n int) []int64 {
	perm := s.rng.Perm(len(exercises))
	if n > len(exercises) {
		n = len(exercises)
	}
	ids := make([]int64, 0, n)
	for _, i := range perm[:n] {
		ids = append(ids, exercises[i].ID)
	}
	return ids
}
