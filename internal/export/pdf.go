// Package export flattens a plan into a paginated PDF document.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/vamos-sujal/ai-glow-fit/internal/models"
)

// FileName is the deterministic name of the exported artifact.
const FileName = "fitness-plan.pdf"

// Vertical cutoffs (mm from the top of an A4 page). Exercises nest under
// days so the day header breaks earlier, leaving room for at least a couple
// of exercise lines. The tips block starts a new page sooner because it is
// a wrapped paragraph.
const (
	topMargin      = 20.0
	dayBreakY      = 270.0
	exerciseBreakY = 280.0
	mealBreakY     = 270.0
	tipsBreakY     = 230.0
)

// PlanPDF renders the plan into a single PDF in fixed section order:
// title, optional quote, workout plan, diet plan, optional tips.
func PlanPDF(plan *models.FitnessPlan, userName string) ([]byte, error) {
	pdf, err := buildPlanPDF(plan, userName)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPlanPDF(plan *models.FitnessPlan, userName string) (*gofpdf.Fpdf, error) {
	if plan == nil {
		return nil, fmt.Errorf("no plan to export")
	}
	if userName == "" {
		userName = "You"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	y := topMargin

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	textCentered(pdf, pageWidth, y, "Your Fitness Plan")
	y += 10

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	textCentered(pdf, pageWidth, y, "Generated for "+userName)
	y += 20

	// Motivation quote, wrapped to the printable width
	if plan.MotivationQuote != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(80, 80, 80)
		quoteLines := pdf.SplitText(`"`+plan.MotivationQuote+`"`, pageWidth-40)
		for _, line := range quoteLines {
			textCentered(pdf, pageWidth, y, line)
			y += 5
		}
		y += 15
	}

	// Workout plan
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(20, y, "Workout Plan")
	y += 10

	for _, day := range plan.Days() {
		if y > dayBreakY {
			pdf.AddPage()
			y = topMargin
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(20, y, day.Day+" - "+day.Focus)
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for _, ex := range day.Exercises {
			if y > exerciseBreakY {
				pdf.AddPage()
				y = topMargin
			}
			line := fmt.Sprintf("- %s: %d sets x %s (%s rest)", ex.Name, ex.Sets, ex.Reps, ex.Rest)
			pdf.Text(25, y, line)
			y += 5
		}
		y += 5
	}

	// Diet plan starts on a fresh page
	pdf.AddPage()
	y = topMargin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(20, y, "Diet Plan")
	y += 10

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(20, y, fmt.Sprintf("Daily Calories: %d", plan.DietPlan.CalorieTarget()))
	y += 8

	if plan.DietPlan != nil && plan.DietPlan.Macros != nil {
		macros := plan.DietPlan.Macros
		pdf.SetFont("Helvetica", "", 11)
		pdf.Text(20, y, fmt.Sprintf("Macros: Protein %s, Carbs %s, Fats %s", macros.Protein, macros.Carbs, macros.Fats))
		y += 12
	}

	for _, meal := range plan.Meals() {
		if y > mealBreakY {
			pdf.AddPage()
			y = topMargin
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(20, y, meal.Meal+" ("+meal.Time+")")
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for _, food := range meal.Foods {
			if y > exerciseBreakY {
				pdf.AddPage()
				y = topMargin
			}
			pdf.Text(25, y, fmt.Sprintf("- %s - %s (%d cal)", food.Name, food.Portion, food.CalorieCount()))
			y += 5
		}
		y += 5
	}

	// Tips block, wrapped
	if plan.AITips != "" {
		if y > tipsBreakY {
			pdf.AddPage()
			y = topMargin
		}

		pdf.SetFont("Helvetica", "B", 14)
		pdf.Text(20, y, "Tips & Advice")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, line := range pdf.SplitText(plan.AITips, pageWidth-40) {
			if y > exerciseBreakY {
				pdf.AddPage()
				y = topMargin
			}
			pdf.Text(20, y, line)
			y += 5
		}
	}

	return pdf, nil
}

func textCentered(pdf *gofpdf.Fpdf, pageWidth, y float64, s string) {
	pdf.Text((pageWidth-pdf.GetStringWidth(s))/2, y, s)
}
