// Package render projects a generated plan into display sections. Every
// projection tolerates partial plans: missing sub-structures produce empty
// sections, never errors.
package render

import (
	"strings"

	"github.com/vamos-sujal/ai-glow-fit/internal/models"
)

const (
	// minTipLength drops fragments too short to be a real tip.
	minTipLength = 10
	// maxTips caps the displayed tip list.
	maxTips = 5
)

// Tip is one numbered fragment of the free-text ai_tips block.
type Tip struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// SegmentTips splits the undelimited ai_tips text on sentence terminators
// and newlines, trims each fragment, and drops anything of minTipLength
// characters or fewer. Order is preserved.
func SegmentTips(tips string) []string {
	fragments := strings.FieldsFunc(tips, func(r rune) bool {
		return r == '.' || r == '\n'
	})
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) > minTipLength {
			out = append(out, fragment)
		}
	}
	return out
}

// TipsSection numbers the segmented tips in original order, capped at maxTips.
func TipsSection(tips string) []Tip {
	segments := SegmentTips(tips)
	if len(segments) > maxTips {
		segments = segments[:maxTips]
	}
	out := make([]Tip, len(segments))
	for i, text := range segments {
		out[i] = Tip{Number: i + 1, Text: text}
	}
	return out
}

// MealCalories sums the calories of a meal's food items, counting a missing
// calorie value as zero. An empty or nil food list totals zero.
func MealCalories(meal models.Meal) int {
	total := 0
	for _, food := range meal.Foods {
		total += food.CalorieCount()
	}
	return total
}

// WorkoutDayView is one day row of the workout section.
type WorkoutDayView struct {
	Day       string            `json:"day"`
	Focus     string            `json:"focus"`
	Duration  string            `json:"duration"`
	Exercises []models.Exercise `json:"exercises"`
	Expanded  bool              `json:"expanded"`
}

// MealView is one meal row of the diet section.
type MealView struct {
	Meal          string            `json:"meal"`
	Time          string            `json:"time"`
	Foods         []models.FoodItem `json:"foods"`
	TotalCalories int               `json:"total_calories"`
	Expanded      bool              `json:"expanded"`
}

// Renderer holds the expand/collapse state for one render session. At most
// one day and one meal are expanded at a time; the state lives with the
// component instance and is never persisted.
type Renderer struct {
	expandedDay  int
	expandedMeal int
}

func NewRenderer() *Renderer {
	return &Renderer{expandedDay: -1, expandedMeal: -1}
}

// ToggleDay expands the day at index, collapsing any previously expanded
// day. Toggling the expanded day collapses it. Returns the expanded state
// after the toggle.
func (r *Renderer) ToggleDay(index int) bool {
	if r.expandedDay == index {
		r.expandedDay = -1
		return false
	}
	r.expandedDay = index
	return true
}

// ToggleMeal behaves like ToggleDay for the diet section.
func (r *Renderer) ToggleMeal(index int) bool {
	if r.expandedMeal == index {
		r.expandedMeal = -1
		return false
	}
	r.expandedMeal = index
	return true
}

// WorkoutSection projects the plan's weekly schedule. A plan without a
// workout plan yields an empty slice.
func (r *Renderer) WorkoutSection(plan *models.FitnessPlan) []WorkoutDayView {
	days := plan.Days()
	out := make([]WorkoutDayView, len(days))
	for i, day := range days {
		out[i] = WorkoutDayView{
			Day:       day.Day,
			Focus:     day.Focus,
			Duration:  day.Duration,
			Exercises: day.Exercises,
			Expanded:  r.expandedDay == i,
		}
	}
	return out
}

// DietSection projects the plan's meals with per-meal calorie totals.
func (r *Renderer) DietSection(plan *models.FitnessPlan) []MealView {
	meals := plan.Meals()
	out := make([]MealView, len(meals))
	for i, meal := range meals {
		out[i] = MealView{
			Meal:          meal.Meal,
			Time:          meal.Time,
			Foods:         meal.Foods,
			TotalCalories: MealCalories(meal),
			Expanded:      r.expandedMeal == i,
		}
	}
	return out
}
