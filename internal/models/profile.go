package models

import (
	"time"

	"github.com/google/uuid"
)

// FitnessProfile is a named persona holding one set of fitness attributes.
// A user may keep several (e.g. "Competition Prep" and "Off Season").
type FitnessProfile struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	ProfileName       string    `json:"profile_name"`
	FullName          *string   `json:"full_name"`
	Age               *int      `json:"age"`
	Gender            *string   `json:"gender"`
	HeightCM          *float64  `json:"height_cm"`
	WeightKG          *float64  `json:"weight_kg"`
	FitnessGoal       *string   `json:"fitness_goal"`
	FitnessLevel      *string   `json:"fitness_level"`
	WorkoutLocation   *string   `json:"workout_location"`
	DietaryPreference *string   `json:"dietary_preference"`
	MedicalHistory    *string   `json:"medical_history"`
	StressLevel       *string   `json:"stress_level"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsComplete reports whether the profile is eligible for plan generation.
// Goal and level are the only required attributes.
func (p *FitnessProfile) IsComplete() bool {
	return p != nil &&
		p.FitnessGoal != nil && *p.FitnessGoal != "" &&
		p.FitnessLevel != nil && *p.FitnessLevel != ""
}
