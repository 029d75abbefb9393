package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vamos-sujal/ai-glow-fit/internal/ai"
	"github.com/vamos-sujal/ai-glow-fit/internal/models"
)

// Model identifiers are fixed per call site; the heavier model generates
// full plans, the lite one serves short motivation quotes.
const (
	planModel       = "google/gemini-2.5-flash"
	motivationModel = "google/gemini-2.5-flash-lite"
)

// Completer is the slice of the AI client the services need.
type Completer interface {
	Complete(ctx context.Context, model string, messages []ai.Message) (string, error)
	CompleteJSON(ctx context.Context, model string, messages []ai.Message, out any) error
}

const planSystemPrompt = "You are an expert fitness coach and nutritionist. " +
	"Generate personalized workout and diet plans based on user profiles. " +
	"Always respond in valid JSON format."

const planShapeInstruction = `Respond with ONLY a valid JSON object (no markdown, no code blocks) in this exact format:
{
  "workout_plan": {
    "weekly_schedule": [
      {
        "day": "Monday",
        "focus": "Upper Body",
        "exercises": [
          {
            "name": "Exercise Name",
            "sets": 3,
            "reps": "10-12",
            "rest": "60 seconds",
            "description": "Brief description"
          }
        ],
        "duration": "45 minutes"
      }
    ],
    "warm_up": ["Exercise 1", "Exercise 2"],
    "cool_down": ["Stretch 1", "Stretch 2"]
  },
  "diet_plan": {
    "daily_calories": 2000,
    "macros": { "protein": "30%", "carbs": "40%", "fats": "30%" },
    "meals": [
      {
        "meal": "Breakfast",
        "time": "7:00 AM",
        "foods": [
          { "name": "Food item", "portion": "1 cup", "calories": 200 }
        ]
      }
    ],
    "hydration": "8-10 glasses of water daily"
  },
  "ai_tips": "3-5 personalized lifestyle and posture tips",
  "motivation_quote": "An inspiring motivational message"
}

Make the plan realistic, actionable, and tailored to the user's specific needs. Include 5-7 days of workouts and detailed meal plans.`

// PlanService turns a complete profile into a structured plan via one AI
// gateway call. It never persists; the caller saves after a successful
// parse so a failed save can be retried without regenerating.
type PlanService struct {
	client Completer
}

func NewPlanService(client Completer) *PlanService {
	return &PlanService{client: client}
}

// BuildPlanPrompt interpolates the profile into the generation instruction.
// Absent optional fields get documented default labels so the outbound text
// never contains empty or nil placeholders.
func BuildPlanPrompt(profile *models.FitnessProfile) string {
	return fmt.Sprintf(`Create a comprehensive fitness plan for this user:
- Name: %s
- Age: %s
- Gender: %s
- Height: %s
- Weight: %s
- Fitness Goal: %s
- Fitness Level: %s
- Workout Location: %s
- Dietary Preference: %s
- Medical History: %s
- Stress Level: %s

%s`,
		stringOr(profile.FullName, "User"),
		intOr(profile.Age, "Not specified"),
		stringOr(profile.Gender, "Not specified"),
		measurementOr(profile.HeightCM, "cm", "Not specified"),
		measurementOr(profile.WeightKG, "kg", "Not specified"),
		stringOr(profile.FitnessGoal, "General fitness"),
		stringOr(profile.FitnessLevel, "Beginner"),
		stringOr(profile.WorkoutLocation, "Home"),
		stringOr(profile.DietaryPreference, "No preference"),
		stringOr(profile.MedicalHistory, "None"),
		stringOr(profile.StressLevel, "Moderate"),
		planShapeInstruction,
	)
}

type planPayload struct {
	WorkoutPlan     *models.WorkoutPlan `json:"workout_plan"`
	DietPlan        *models.DietPlan    `json:"diet_plan"`
	AITips          string              `json:"ai_tips"`
	MotivationQuote string              `json:"motivation_quote"`
}

// GeneratePlan requests a plan for the profile. On success the top-level
// shape is guaranteed but nested fields are not; consumers re-validate.
// Errors carry the ai package taxonomy for handler mapping.
func (s *PlanService) GeneratePlan(ctx context.Context, profile *models.FitnessProfile) (*models.FitnessPlan, error) {
	messages := []ai.Message{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: BuildPlanPrompt(profile)},
	}

	var payload planPayload
	if err := s.client.CompleteJSON(ctx, planModel, messages, &payload); err != nil {
		return nil, err
	}

	profileID := profile.ID
	return &models.FitnessPlan{
		UserID:          profile.UserID,
		ProfileID:       &profileID,
		WorkoutPlan:     payload.WorkoutPlan,
		DietPlan:        payload.DietPlan,
		AITips:          payload.AITips,
		MotivationQuote: payload.MotivationQuote,
	}, nil
}

func stringOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func intOr(value *int, fallback string) string {
	if value == nil || *value == 0 {
		return fallback
	}
	return strconv.Itoa(*value)
}

func measurementOr(value *float64, unit, fallback string) string {
	if value == nil || *value == 0 {
		return fallback
	}
	return strconv.FormatFloat(*value, 'f', -1, 64) + " " + unit
}
