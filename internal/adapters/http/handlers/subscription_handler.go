package handlers

import (
	"errors"

	"flexfit-api/internal/core/services"
	"flexfit-api/internal/pkg/response"
	"flexfit-api/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler handles subscription ledger endpoints
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// SubscribeRequest represents subscribe request body
type SubscribeRequest struct {
	PlanID uint `json:"plan_id" validate:"required,gt=0"`
}

// GetCurrent returns the caller's current subscription
// @Summary Get current subscription
// @Description Get the authenticated member's current subscription, null when none
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /user/subscription [get]
func (h *SubscriptionHandler) GetCurrent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	sub, err := h.subscriptionService.GetCurrent(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get subscription")
	}

	// No subscription is not an error: data.subscription is null
	return response.Success(c, "Subscription retrieved successfully", fiber.Map{
		"subscription": sub,
	})
}

// Subscribe starts a new subscription period on a plan
// @Summary Subscribe to a plan
// @Description Start a new subscription period. Any still-active subscription
// is superseded, so renewal is the same call.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubscribeRequest true "Plan to subscribe to"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /user/subscription [post]
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	sub, err := h.subscriptionService.Subscribe(c.Context(), userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFoundSvc):
			return response.NotFound(c, "Plan not found")
		default:
			return response.InternalServerError(c, "Failed to subscribe")
		}
	}

	return response.Success(c, "Subscribed successfully", fiber.Map{
		"subscription": sub,
	})
}

// ListAll returns every subscription for the admin ledger view
// @Summary List all subscriptions
// @Description List every subscription with member and plan details
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/subscriptions [get]
func (h *SubscriptionHandler) ListAll(c *fiber.Ctx) error {
	subs, err := h.subscriptionService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list subscriptions")
	}

	return response.Success(c, "Subscriptions retrieved successfully", fiber.Map{
		"subscriptions": subs,
	})
}
