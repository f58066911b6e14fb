package domain

import (
	"time"
)

// CompletedWorkout is a concrete instance of performing a routine.
// Duration is derived from the start/completion timestamps when the
// workout is logged and stored in seconds.
type CompletedWorkout struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"userId"`
	RoutineID       int64     `db:"routine_id" json:"routineId"`
	StartedAt       time.Time `db:"started_at" json:"startedAt"`
	CompletedAt     time.Time `db:"completed_at" json:"completedAt"`
	DurationSeconds int64     `db:"duration_seconds" json:"durationSeconds"`
	CaloriesBurned  int       `db:"calories_burned" json:"caloriesBurned"`
	Notes           string    `db:"notes" json:"notes,omitempty"`

	// Exercises is populated on reads that include the workout's entries.
	Exercises []CompletedExercise `db:"-" json:"completedExercises,omitempty"`
}

// CompletedExercise records the actual outcome of one routine exercise
// inside a completed workout.
type CompletedExercise struct {
	ID                 int64    `db:"id" json:"id"`
	CompletedWorkoutID int64    `db:"completed_workout_id" json:"completedWorkoutId"`
	RoutineExerciseID  int64    `db:"routine_exercise_id" json:"routineExerciseId"`
	SetsCompleted      *int     `db:"sets_completed" json:"setsCompleted,omitempty"`
	RepsCompleted      *int     `db:"reps_completed" json:"repsCompleted,omitempty"`
	DurationCompleted  *int     `db:"duration_completed" json:"durationCompleted,omitempty"` // minutes
	DistanceCompleted  *float64 `db:"distance_completed" json:"distanceCompleted,omitempty"` // km
	Notes              string   `db:"notes" json:"notes,omitempty"`
}

// WorkoutSummary is the flattened row the progress aggregator works
// from: one completed workout with its routine name and exercise count.
type WorkoutSummary struct {
	ID              int64     `db:"id"`
	RoutineName     string    `db:"routine_name"`
	StartedAt       time.Time `db:"started_at"`
	DurationSeconds int64     `db:"duration_seconds"`
	CaloriesBurned  int       `db:"calories_burned"`
	ExerciseCount   int       `db:"exercise_count"`
}
