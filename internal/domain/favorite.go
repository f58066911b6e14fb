package domain

import (
	"time"
)

// FavoriteExercise marks an exercise as a favorite of a user.
// Unique per (user, exercise); toggling deletes or recreates the row.
type FavoriteExercise struct {
	ID         int64 `db:"id" json:"id"`
	UserID     int64 `db:"user_id" json:"userId"`
	ExerciseID int64 `db:"exercise_id" json:"exerciseId"`
}

// ExerciseOfTheDay is the single featured exercise for a calendar
// date, assigned lazily on first read. The unique date constraint
// guards against race-created duplicates under concurrent first access.
type ExerciseOfTheDay struct {
	ID         int64     `db:"id" json:"id"`
	Date       time.Time `db:"date" json:"date"`
	ExerciseID int64     `db:"exercise_id" json:"exerciseId"`

	Exercise *Exercise `db:"-" json:"exercise,omitempty"`
}
