package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vamos-sujal/ai-glow-fit/internal/ai"
	"github.com/vamos-sujal/ai-glow-fit/internal/export"
	"github.com/vamos-sujal/ai-glow-fit/internal/models"
	"github.com/vamos-sujal/ai-glow-fit/internal/services"
)

type planGenerator interface {
	GeneratePlan(ctx context.Context, profile *models.FitnessProfile) (*models.FitnessPlan, error)
}

type motivationFetcher interface {
	FetchQuote(ctx context.Context) string
}

type planStore interface {
	Insert(ctx context.Context, plan *models.FitnessPlan) error
	GetLatestByProfile(ctx context.Context, profileID uuid.UUID) (*models.FitnessPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FitnessPlan, error)
}

type profileGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.FitnessProfile, error)
}

type imageProvider interface {
	ItemImage(ctx context.Context, name, kind string) (string, error)
}

type PlanHandler struct {
	planService planGenerator
	motivation  motivationFetcher
	planRepo    planStore
	profileRepo profileGetter
	synthesizer services.Synthesizer
	images      imageProvider
}

func NewPlanHandler(
	planService planGenerator,
	motivation motivationFetcher,
	planRepo planStore,
	profileRepo profileGetter,
	synthesizer services.Synthesizer,
	images imageProvider,
) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		motivation:  motivation,
		planRepo:    planRepo,
		profileRepo: profileRepo,
		synthesizer: synthesizer,
		images:      images,
	}
}

// GeneratePlan runs the full pipeline for one profile: generate, then save.
// Generation and persistence are not transactional; a save failure keeps
// the generated plan in the response so the client can retry saving
// without another gateway call.
func (h *PlanHandler) GeneratePlan(c *fiber.Ctx) error {
	profile, status, msg := h.ownedProfile(c)
	if profile == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	if !profile.IsComplete() {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"error": "Set a fitness goal and fitness level before generating a plan"})
	}

	plan, err := h.planService.GeneratePlan(c.Context(), profile)
	if err != nil {
		return respondGenerationError(c, err)
	}

	if err := h.planRepo.Insert(c.Context(), plan); err != nil {
		log.Printf("plan save failed after successful generation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Plan generated but not saved. Retry saving to keep it.",
			"plan":  plan,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": plan})
}

type savePlanRequest struct {
	WorkoutPlan     *models.WorkoutPlan `json:"workout_plan"`
	DietPlan        *models.DietPlan    `json:"diet_plan"`
	AITips          string              `json:"ai_tips"`
	MotivationQuote string              `json:"motivation_quote"`
}

// SavePlan persists a plan the client still holds in memory after a failed
// save, without re-invoking generation.
func (h *PlanHandler) SavePlan(c *fiber.Ctx) error {
	profile, status, msg := h.ownedProfile(c)
	if profile == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	var req savePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.WorkoutPlan == nil && req.DietPlan == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to save"})
	}

	profileID := profile.ID
	plan := &models.FitnessPlan{
		UserID:          profile.UserID,
		ProfileID:       &profileID,
		WorkoutPlan:     req.WorkoutPlan,
		DietPlan:        req.DietPlan,
		AITips:          req.AITips,
		MotivationQuote: req.MotivationQuote,
	}
	if err := h.planRepo.Insert(c.Context(), plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Plan generated but not saved. Retry saving to keep it.",
			"plan":  plan,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": plan})
}

// GetLatestPlan returns the newest plan for the profile; history stays in
// the store but is never read.
func (h *PlanHandler) GetLatestPlan(c *fiber.Ctx) error {
	profile, status, msg := h.ownedProfile(c)
	if profile == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	plan, err := h.planRepo.GetLatestByProfile(c.Context(), profile.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No plan generated yet"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch plan"})
	}

	return c.JSON(fiber.Map{"plan": plan})
}

// RefreshMotivation fetches a fresh quote. The service guarantees a quote
// string even when the gateway fails, so this never errors.
func (h *PlanHandler) RefreshMotivation(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"quote": h.motivation.FetchQuote(c.Context())})
}

type narrationRequest struct {
	Section string `json:"section"`
}

// Narrate flattens the requested plan section and synthesizes it. The
// "service not configured" condition gets its own message; other failures
// are non-fatal and generic.
func (h *PlanHandler) Narrate(c *fiber.Ctx) error {
	plan, status, msg := h.ownedPlan(c)
	if plan == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	var req narrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	section := services.PlanSection(req.Section)
	if section != services.SectionWorkout && section != services.SectionDiet {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "section must be workout or diet"})
	}

	text := services.FormatForSpeech(plan, section)
	if text == "" {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"error": "Nothing to narrate for this section"})
	}

	audio, err := h.synthesizer.Synthesize(c.Context(), text)
	if err != nil {
		if errors.Is(err, services.ErrSpeechNotConfigured) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": services.SpeechNotConfiguredMessage})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Voice playback unavailable"})
	}

	return c.JSON(fiber.Map{"audioContent": base64.StdEncoding.EncodeToString(audio)})
}

// ExportPlan flattens the plan into the PDF artifact and serves it as a
// download with the deterministic file name.
func (h *PlanHandler) ExportPlan(c *fiber.Ctx) error {
	plan, status, msg := h.ownedPlan(c)
	if plan == nil {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	userName := ""
	if plan.ProfileID != nil {
		if profile, err := h.profileRepo.GetByID(c.Context(), *plan.ProfileID); err == nil && profile.FullName != nil {
			userName = *profile.FullName
		}
	}

	pdfBytes, err := export.PlanPDF(plan, userName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export plan"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.FileName+`"`)
	return c.Send(pdfBytes)
}

type imageRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// GenerateImage requests an illustrative image for an exercise or food
// item. Repeats for the same name hit the session cache; a request while
// another is in flight is rejected rather than queued.
func (h *PlanHandler) GenerateImage(c *fiber.Ctx) error {
	if _, err := parseUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req imageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	kind := req.Type
	if kind != "food" {
		kind = "exercise"
	}

	url, err := h.images.ItemImage(c.Context(), req.Name, kind)
	if err != nil {
		if errors.Is(err, services.ErrImageInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Image generation already in progress"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to generate image"})
	}

	return c.JSON(fiber.Map{"image_url": url})
}

// respondGenerationError maps the ai error taxonomy onto user-facing
// messages. Malformed responses read like a generic failure to the user
// but are logged distinctly for diagnosis.
func respondGenerationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"error": "AI service is not configured"})
	case errors.Is(err, ai.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).
			JSON(fiber.Map{"error": "Rate limit exceeded. Please try again in a moment."})
	case errors.Is(err, ai.ErrQuotaExceeded):
		return c.Status(fiber.StatusPaymentRequired).
			JSON(fiber.Map{"error": "Usage limit reached. Please add credits to continue."})
	case ai.IsMalformed(err):
		log.Printf("malformed AI response: %v", err)
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"error": "Failed to generate plan. Please try again."})
	default:
		log.Printf("plan generation failed: %v", err)
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"error": "Failed to generate plan"})
	}
}

func (h *PlanHandler) ownedProfile(c *fiber.Ctx) (*models.FitnessProfile, int, string) {
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

func (h *PlanHandler) ownedPlan(c *fiber.Ctx) (*models.FitnessPlan, int, string) {
	userID, err := parseUserID(c)
	if err != nil {
		return nil, fiber.StatusUnauthorized, "Invalid token"
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid plan id"
	}

	plan, err := h.planRepo.GetByID(c.Context(), planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fiber.StatusNotFound, "Plan not found"
		}
		return nil, fiber.StatusInternalServerError, "Failed to fetch plan"
	}
	if plan.UserID != userID {
		return nil, fiber.StatusForbidden, "Forbidden"
	}

	return plan, fiber.StatusOK, ""
}
