package domain

import (
	"time"
)

// Difficulty of a workout challenge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// WorkoutChallenge is an administrator-defined time-boxed goal built
// from a curated exercise list. Goal is the number of distinct
// exercises a participant has to complete.
type WorkoutChallenge struct {
	ID           int64        `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Description  string       `db:"description" json:"description,omitempty"`
	StartDate    time.Time    `db:"start_date" json:"startDate"`
	EndDate      time.Time    `db:"end_date" json:"endDate"`
	Goal         int          `db:"goal" json:"goal"`
	Difficulty   Difficulty   `db:"difficulty" json:"difficulty"`
	ExerciseType ExerciseType `db:"exercise_type" json:"exerciseType"`

	// Exercises is the curated list, populated by the repository.
	Exercises []Exercise `db:"-" json:"exercises,omitempty"`
}

// UserChallenge tracks one user's participation in a challenge.
// Progress is the count of completed per-exercise rows and never
// decreases; Completed flips to true once progress reaches the
// challenge goal and is never reset.
type UserChallenge struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	ChallengeID int64     `db:"challenge_id" json:"challengeId"`
	Progress    int       `db:"progress" json:"progress"`
	Completed   bool      `db:"completed" json:"completed"`
	JoinedAt    time.Time `db:"joined_at" json:"joinedAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// UserChallengeExercise is the per-exercise completion flag for a
// joined challenge. One row exists for every exercise in the challenge
// from the moment the user joins.
type UserChallengeExercise struct {
	ID              int64      `db:"id" json:"id"`
	UserChallengeID int64      `db:"user_challenge_id" json:"userChallengeId"`
	ExerciseID      int64      `db:"exercise_id" json:"exerciseId"`
	Completed       bool       `db:"completed" json:"completed"`
	CompletedAt     *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}
