package domain

import (
	"time"
)

// Gender of a user, self-reported on the profile.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// User represents an account in the system. Every routine, completed
// workout, reminder, favorite and challenge membership hangs off a user
// row and is removed with it.
type User struct {
	ID                int64     `db:"id" json:"id"`
	Username          string    `db:"username" json:"username"` // Unique
	Email             string    `db:"email" json:"email"`       // Unique
	PasswordHash      string    `db:"password_hash" json:"-"`   // Never expose this via JSON
	Name              string    `db:"name" json:"name"`
	Gender            Gender    `db:"gender" json:"gender,omitempty"`
	ProfilePictureURL *string   `db:"profile_picture_url" json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}
