package services

import (
	"fmt"
	"strings"

	"github.com/vamos-sujal/ai-glow-fit/internal/models"
)

// PlanSection selects which part of the plan is narrated.
type PlanSection string

const (
	SectionWorkout PlanSection = "workout"
	SectionDiet    PlanSection = "diet"
)

// FormatForSpeech flattens a plan section into a single spoken-text payload.
// The output is deterministic: identical input always produces identical
// text. An unpopulated section yields an empty string.
func FormatForSpeech(plan *models.FitnessPlan, section PlanSection) string {
	if plan == nil {
		return ""
	}

	var b strings.Builder
	switch section {
	case SectionWorkout:
		if plan.WorkoutPlan == nil {
			return ""
		}
		b.WriteString("Here is your workout plan. ")
		for _, day := range plan.WorkoutPlan.WeeklySchedule {
			fmt.Fprintf(&b, "%s, %s. ", day.Day, day.Focus)
			for _, ex := range day.Exercises {
				fmt.Fprintf(&b, "%s, %d sets of %s reps with %s rest. ", ex.Name, ex.Sets, ex.Reps, ex.Rest)
			}
		}
	case SectionDiet:
		if plan.DietPlan == nil {
			return ""
		}
		fmt.Fprintf(&b, "Your daily calorie target is %d calories. ", plan.DietPlan.CalorieTarget())
		for _, meal := range plan.DietPlan.Meals {
			fmt.Fprintf(&b, "For %s at %s: ", meal.Meal, meal.Time)
			for _, food := range meal.Foods {
				fmt.Fprintf(&b, "%s, %s. ", food.Name, food.Portion)
			}
		}
	}
	return b.String()
}
