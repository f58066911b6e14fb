package domain

// MuscleGroup is a catalog entry exercises are grouped under.
// Rows are seeded administratively and keyed by name.
type MuscleGroup struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ExerciseType classifies an exercise in the catalog.
type ExerciseType string

const (
	TypeStrength    ExerciseType = "Strength"
	TypeCardio      ExerciseType = "Cardio"
	TypeFlexibility ExerciseType = "Flexibility"
	TypeBalance     ExerciseType = "Balance"
	TypePlyometric  ExerciseType = "Plyometric"
	TypeBodyweight  ExerciseType = "Bodyweight"
)

// ExerciseTypes lists every valid exercise type, in catalog order.
func ExerciseTypes() []ExerciseType {
	return []ExerciseType{
		TypeStrength,
		TypeCardio,
		TypeFlexibility,
		TypeBalance,
		TypePlyometric,
		TypeBodyweight,
	}
}

func (t ExerciseType) IsValid() bool {
	for _, known := range ExerciseTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Exercise is a catalog entry referenced by routines, favorites,
// challenges and the exercise of the day.
type Exercise struct {
	ID            int64        `db:"id" json:"id"`
	Name          string       `db:"name" json:"name"`
	MuscleGroupID int64        `db:"muscle_group_id" json:"muscleGroupId"`
	Description   string       `db:"description" json:"description,omitempty"`
	Type          ExerciseType `db:"exercise_type" json:"exerciseType"`
}
