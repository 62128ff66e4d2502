package handlers

import (
	"errors"
	"strings"

	"flexfit-api/internal/core/services"
	"flexfit-api/internal/pkg/response"
	"flexfit-api/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PlanHandler handles membership plan catalog endpoints
type PlanHandler struct {
	planService *services.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// List returns the plan catalog
// @Summary List membership plans
// @Description List all live plans ordered by price
// @Tags Plans
// @Produce json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.planService.ListPlans(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list plans")
	}

	return response.Success(c, "Plans retrieved successfully", fiber.Map{
		"plans": plans,
	})
}

// Create adds a plan to the catalog
// @Summary Create membership plan
// @Description Create a new membership plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePlanInput true "Plan data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var input services.CreatePlanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Name = strings.TrimSpace(input.Name)

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	plan, err := h.planService.CreatePlan(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create plan")
	}

	return response.Success(c, "Plan created successfully", fiber.Map{
		"plan": plan,
	})
}

// Update replaces a plan's details
// @Summary Update membership plan
// @Description Update an existing membership plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Param body body services.UpdatePlanInput true "Plan data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/plans/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid plan ID")
	}

	var input services.UpdatePlanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Name = strings.TrimSpace(input.Name)

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	plan, err := h.planService.UpdatePlan(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFoundSvc):
			return response.NotFound(c, "Plan not found")
		default:
			return response.InternalServerError(c, "Failed to update plan")
		}
	}

	return response.Success(c, "Plan updated successfully", fiber.Map{
		"plan": plan,
	})
}

// Delete retires a plan from the catalog
// @Summary Delete membership plan
// @Description Retire a plan. Existing subscriptions keep their plan snapshot.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/plans/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid plan ID")
	}

	if err := h.planService.DeletePlan(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFoundSvc):
			return response.NotFound(c, "Plan not found")
		default:
			return response.InternalServerError(c, "Failed to delete plan")
		}
	}

	return response.Success(c, "Plan deleted successfully", nil)
}
