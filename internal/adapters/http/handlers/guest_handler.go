package handlers

import (
	"hotel-desk/internal/core/services"
	"hotel-desk/internal/pkg/pagination"
	"hotel-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GuestHandler handles guest endpoints
type GuestHandler struct {
	guestService *services.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *services.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// GuestRequest creates a guest
type GuestRequest struct {
	FullName    string  `json:"fullName" validate:"required,max=150"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,max=30"`
	Email       *string `json:"email" validate:"omitempty,email,max=150"`
	Gender      *string `json:"gender" validate:"omitempty,max=20"`
}

// UpdateGuestRequest edits a guest's contact details
type UpdateGuestRequest struct {
	FullName    string  `json:"fullName" validate:"required,max=150"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,max=30"`
	Email       *string `json:"email" validate:"omitempty,email,max=150"`
}

// List lists guests with pagination
// @Summary List guests
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /guests [get]
func (h *GuestHandler) List(c *fiber.Ctx) error {
	params := pagination.FromQuery(c)

	guests, total, err := h.guestService.ListGuests(c.UserContext(), params.Offset(), params.Limit)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Guests retrieved successfully", pagination.NewPage(guests, params, total))
}

// Stats lists guests with stay totals
// @Summary Guests with stats
// @Description Total stays, revenue and last stay per guest over non-cancelled reservations
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /guests/stats [get]
func (h *GuestHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.guestService.ListGuestsWithStats(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Guest statistics retrieved successfully", stats)
}

// Reservations lists a guest's stay history
// @Summary Guest reservations
// @Tags Guests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /guests/{id}/reservations [get]
func (h *GuestHandler) Reservations(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid guest ID")
	}
	details, err := h.guestService.GetGuestReservations(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Guest reservations retrieved successfully", details)
}

// Create registers a guest
// @Summary Create guest
// @Tags Guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GuestRequest true "Guest"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /guests [post]
func (h *GuestHandler) Create(c *fiber.Ctx) error {
	var req GuestRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}

	guest, err := h.guestService.CreateGuest(c.UserContext(), &services.NewGuestInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Gender:      req.Gender,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Guest created successfully", guest)
}

// Update edits a guest
// @Summary Update guest
// @Tags Guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guest ID"
// @Param body body UpdateGuestRequest true "Guest"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /guests/{id} [put]
func (h *GuestHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid guest ID")
	}
	var req UpdateGuestRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}

	guest, err := h.guestService.UpdateGuest(c.UserContext(), id, &services.UpdateGuestInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Guest updated successfully", guest)
}
