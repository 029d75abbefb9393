package models

import (
	"time"

	"github.com/google/uuid"
)

// The plan structures mirror the JSON shape requested from the AI gateway.
// Every nested field is untrusted input: the model sometimes omits fields or
// returns empty collections, so consumers must go through the nil-safe
// accessors below instead of assuming presence.

type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Rest        string `json:"rest"`
	Description string `json:"description"`
}

type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
	Duration  string     `json:"duration"`
}

type WorkoutPlan struct {
	WeeklySchedule []WorkoutDay `json:"weekly_schedule"`
	WarmUp         []string     `json:"warm_up"`
	CoolDown       []string     `json:"cool_down"`
}

type FoodItem struct {
	Name     string `json:"name"`
	Portion  string `json:"portion"`
	Calories *int   `json:"calories"`
}

// CalorieCount returns the calorie value, or 0 when the generator omitted it.
func (f FoodItem) CalorieCount() int {
	if f.Calories == nil {
		return 0
	}
	return *f.Calories
}

type Meal struct {
	Meal  string     `json:"meal"`
	Time  string     `json:"time"`
	Foods []FoodItem `json:"foods"`
}

type Macros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fats    string `json:"fats"`
}

type DietPlan struct {
	DailyCalories *int    `json:"daily_calories"`
	Macros        *Macros `json:"macros"`
	Meals         []Meal  `json:"meals"`
	Hydration     string  `json:"hydration"`
}

// CalorieTarget returns the daily calorie target, or 0 when absent.
func (d *DietPlan) CalorieTarget() int {
	if d == nil || d.DailyCalories == nil {
		return 0
	}
	return *d.DailyCalories
}

// FitnessPlan is one generated workout/diet/tips bundle. Plans are never
// mutated; regeneration inserts a new row and the newest one wins.
type FitnessPlan struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"user_id"`
	ProfileID       *uuid.UUID   `json:"profile_id"`
	WorkoutPlan     *WorkoutPlan `json:"workout_plan"`
	DietPlan        *DietPlan    `json:"diet_plan"`
	AITips          string       `json:"ai_tips"`
	MotivationQuote string       `json:"motivation_quote"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Days returns the weekly schedule, tolerating a missing workout plan.
func (p *FitnessPlan) Days() []WorkoutDay {
	if p == nil || p.WorkoutPlan == nil {
		return nil
	}
	return p.WorkoutPlan.WeeklySchedule
}

// Meals returns the meal list, tolerating a missing diet plan.
func (p *FitnessPlan) Meals() []Meal {
	if p == nil || p.DietPlan == nil {
		return nil
	}
	return p.DietPlan.Meals
}
