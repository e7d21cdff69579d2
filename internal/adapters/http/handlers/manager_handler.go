package handlers

import (
	"hotel-desk/internal/adapters/http/middleware"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/core/services"
	"hotel-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ManagerHandler handles staff account administration
type ManagerHandler struct {
	managerService *services.ManagerService
}

// NewManagerHandler creates a new manager handler
func NewManagerHandler(managerService *services.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerService: managerService}
}

// CreateManagerRequest represents account creation body
type CreateManagerRequest struct {
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=150"`
	Role     string `json:"role" validate:"omitempty"`
}

// List lists staff accounts
// @Summary List staff accounts
// @Tags Managers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /managers [get]
func (h *ManagerHandler) List(c *fiber.Ctx) error {
	managers, err := h.managerService.ListManagers(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Managers retrieved successfully", managers)
}

// Create opens a staff account
// @Summary Create staff account
// @Description Role is MANAGER or STAFF, STAFF when omitted
// @Tags Managers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateManagerRequest true "Account"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /managers [post]
func (h *ManagerHandler) Create(c *fiber.Ctx) error {
	var req CreateManagerRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return response.FromError(c, err)
	}

	manager, err := h.managerService.CreateManager(c.UserContext(), &services.CreateManagerInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     role,
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Manager created successfully", fiber.Map{
		"managerId": manager.ID,
		"manager":   manager,
	})
}

// Delete removes a staff account
// @Summary Delete staff account
// @Description Refused for your own account and for the last remaining account
// @Tags Managers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Manager ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /managers/{id} [delete]
func (h *ManagerHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid manager ID")
	}
	requestedBy, ok := middleware.ManagerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.managerService.DeleteManager(c.UserContext(), id, requestedBy); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Manager deleted successfully", nil)
}
