package domain

import (
	"time"
)

// Routine is a user-authored template of exercises with target metrics.
// Deleting a routine cascades to its RoutineExercise rows.
type Routine struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Exercises is populated by the repository on reads that include the
	// routine's entries; it is not a column.
	Exercises []RoutineExercise `db:"-" json:"exercises,omitempty"`
}

// RoutineExercise is one entry of a routine: an exercise reference plus
// the targets the user set for it. All targets are optional since a
// cardio entry has no sets and a strength entry has no distance.
type RoutineExercise struct {
	ID         int64    `db:"id" json:"id"`
	RoutineID  int64    `db:"routine_id" json:"routineId"`
	ExerciseID int64    `db:"exercise_id" json:"exerciseId"`
	Sets       *int     `db:"sets" json:"sets,omitempty"`
	Reps       *int     `db:"reps" json:"reps,omitempty"`
	Duration   *int     `db:"duration" json:"duration,omitempty"` // minutes
	Distance   *float64 `db:"distance" json:"distance,omitempty"` // km
}
