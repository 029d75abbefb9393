package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vamos-sujal/ai-glow-fit/internal/models"
	"github.com/vamos-sujal/ai-glow-fit/internal/repository"
)

type profileStore interface {
	Create(ctx context.Context, userID uuid.UUID, input repository.ProfileInput) (*models.FitnessProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FitnessProfile, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FitnessProfile, error)
	Update(ctx context.Context, id uuid.UUID, input repository.ProfileInput) (*models.FitnessProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProfileHandler struct {
	profileRepo profileStore
}

func NewProfileHandler(profileRepo profileStore) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

type profileRequest struct {
	ProfileName       string   `json:"profile_name"`
	FullName          *string  `json:"full_name"`
	Age               *int     `json:"age"`
	Gender            *string  `json:"gender"`
	HeightCM          *float64 `json:"height_cm"`
	WeightKG          *float64 `json:"weight_kg"`
	FitnessGoal       *string  `json:"fitness_goal"`
	FitnessLevel      *string  `json:"fitness_level"`
	WorkoutLocation   *string  `json:"workout_location"`
	DietaryPreference *string  `json:"dietary_preference"`
	MedicalHistory    *string  `json:"medical_history"`
	StressLevel       *string  `json:"stress_level"`
}

func (r profileRequest) validate() string {
	if strings.TrimSpace(r.ProfileName) == "" {
		return "profile_name is required"
	}
	if r.Age != nil && (*r.Age < 13 || *r.Age > 120) {
		return "age must be between 13 and 120"
	}
	if r.HeightCM != nil && (*r.HeightCM <= 0 || *r.HeightCM > 300) {
		return "height_cm is out of range"
	}
	if r.WeightKG != nil && (*r.WeightKG <= 0 || *r.WeightKG > 500) {
		return "weight_kg is out of range"
	}
	return ""
}

func (r profileRequest) toInput() repository.ProfileInput {
	return repository.ProfileInput{
		ProfileName:       strings.TrimSpace(r.ProfileName),
		FullName:          r.FullName,
		Age:               r.Age,
		Gender:            r.Gender,
		HeightCM:          r.HeightCM,
		WeightKG:          r.WeightKG,
		FitnessGoal:       r.FitnessGoal,
		FitnessLevel:      r.FitnessLevel,
		WorkoutLocation:   r.WorkoutLocation,
		DietaryPreference: r.DietaryPreference,
		MedicalHistory:    r.MedicalHistory,
		StressLevel:       r.StressLevel,
	}
}

func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	profile, err := h.profileRepo.Create(c.Context(), userID, req.toInput())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"profile":  profile,
		"complete": profile.IsComplete(),
	})
}

func (h *ProfileHandler) ListProfiles(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profiles, err := h.profileRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list profiles"})
	}

	return c.JSON(fiber.Map{"profiles": profiles})
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, status, msg := h.ownedProfile(c)
	if profile == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{
		"profile":  profile,
		"complete": profile.IsComplete(),
	})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	profile, status, msg := h.ownedProfile(c)
	if profile == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	updated, err := h.profileRepo.Update(c.Context(), profile.ID, req.toInput())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":  updated,
		"complete": updated.IsComplete(),
	})
}

func (h *ProfileHandler) DeleteProfile(c *fiber.Ctx) error {
	profile, status, msg := h.ownedProfile(c)
	if profile == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	if err := h.profileRepo.Delete(c.Context(), profile.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete profile"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ownedProfile loads the :id profile and verifies the caller owns it.
// A nil profile comes back with the status and message to respond with.
func (h *ProfileHandler) ownedProfile(c *fiber.Ctx) (*models.FitnessProfile, int, string) {
	userID, err := parseUserID(c)
	if err != nil {
		return nil, fiber.StatusUnauthorized, "Invalid token"
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid profile id"
	}

	profile, err := h.profileRepo.GetByID(c.Context(), profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fiber.StatusNotFound, "Profile not found"
		}
		return nil, fiber.StatusInternalServerError, "Failed to fetch profile"
	}
	if profile.UserID != userID {
		return nil, fiber.StatusForbidden, "Forbidden"
	}

	return profile, fiber.StatusOK, ""
}
