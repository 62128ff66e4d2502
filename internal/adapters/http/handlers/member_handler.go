package handlers

import (
	"errors"
	"strings"

	"flexfit-api/internal/core/services"
	"flexfit-api/internal/pkg/password"
	"flexfit-api/internal/pkg/response"
	"flexfit-api/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member directory and profile endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List returns all members with their latest subscription
// @Summary List members
// @Description List all members, newest first, each with their current plan
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	members, err := h.memberService.ListMembers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": members,
	})
}

// Create registers a member on behalf of an admin
// @Summary Create member
// @Description Create a new member account
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemberInput true "Member data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.CreateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.CreateMember(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Success(c, "Member created successfully", fiber.Map{
		"member": member,
	})
}

// Update partially updates a member
// @Summary Update member
// @Description Update a member's name, email or password
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.UpdateMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Password != nil && !password.Acceptable(*input.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.UpdateMember(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFoundSvc):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member,
	})
}

// Delete removes a member and all dependent records
// @Summary Delete member
// @Description Delete a member with their subscriptions and profile
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid member ID")
	}

	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.memberService.DeleteMember(c.Context(), uint(id), adminID); err != nil {
		switch {
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.BadRequest(c, "Cannot delete your own account")
		case errors.Is(err, services.ErrMemberNotFoundSvc):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to delete member")
		}
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// GetProfile returns the caller's own profile
// @Summary Get own profile
// @Description Get the authenticated member's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile [get]
func (h *MemberHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.memberService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFoundSvc) {
			return response.NotFound(c, "Profile not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"profile": profile,
	})
}

// UpdateProfile updates the caller's own profile
// @Summary Update own profile
// @Description Update name, email, contact details or password. A password
// change requires the current password.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profile [put]
func (h *MemberHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.NewPassword != "" && !password.Acceptable(input.NewPassword) {
		return response.BadRequest(c, "New password must be at least 8 characters")
	}

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	profile, err := h.memberService.UpdateProfile(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFoundSvc):
			return response.NotFound(c, "Profile not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrCurrentPasswordWrong):
			return response.BadRequest(c, "Current password is incorrect")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"profile": profile,
	})
}
