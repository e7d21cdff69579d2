package handlers

import (
	"hotel-desk/internal/adapters/http/middleware"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/core/services"
	"hotel-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles booking endpoints
type ReservationHandler struct {
	reservationService *services.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest books a room. With isNewGuest the guest fields create a guest,
// otherwise guestId selects an existing one.
type CreateReservationRequest struct {
	RoomID         uint    `json:"roomId" validate:"required"`
	IsNewGuest     bool    `json:"isNewGuest"`
	GuestID        *uint   `json:"guestId" validate:"required_if=IsNewGuest false"`
	GuestName      string  `json:"guestName" validate:"required_if=IsNewGuest true,max=150"`
	GuestPhone     string  `json:"guestPhone" validate:"required_if=IsNewGuest true,max=30"`
	GuestEmail     *string `json:"guestEmail" validate:"omitempty,email,max=150"`
	GuestGender    *string `json:"guestGender" validate:"omitempty,max=20"`
	CheckInDate    string  `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate   string  `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	NumberOfGuests int     `json:"numberOfGuests" validate:"required,min=1"`
	StaffNotes     *string `json:"staffNotes"`
}

// UpdateReservationRequest overwrites an Active reservation
type UpdateReservationRequest struct {
	CheckInDate    string  `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate   string  `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	NumberOfGuests int     `json:"numberOfGuests" validate:"required,min=1"`
	StaffNotes     *string `json:"staffNotes"`
}

// List lists Active reservations
// @Summary List active reservations
// @Tags Reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	details, err := h.reservationService.ListActiveReservations(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Reservations retrieved successfully", details)
}

// Create books a room
// @Summary Create reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateReservationRequest true "Reservation"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req CreateReservationRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}
	managerID, ok := middleware.ManagerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	checkIn, err := domain.ParseDate("checkInDate", req.CheckInDate)
	if err != nil {
		return response.FromError(c, err)
	}
	checkOut, err := domain.ParseDate("checkOutDate", req.CheckOutDate)
	if err != nil {
		return response.FromError(c, err)
	}

	input := &services.CreateReservationInput{
		RoomID:         req.RoomID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		StaffNotes:     req.StaffNotes,
		ManagerID:      managerID,
	}
	if req.IsNewGuest {
		input.NewGuest = &services.NewGuestInput{
			FullName:    req.GuestName,
			PhoneNumber: req.GuestPhone,
			Email:       req.GuestEmail,
			Gender:      req.GuestGender,
		}
	} else {
		input.GuestID = req.GuestID
	}

	id, err := h.reservationService.CreateReservation(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Reservation created successfully", fiber.Map{"reservationId": id})
}

// Update edits an Active reservation
// @Summary Update reservation
// @Description New dates are checked against the room's other Active reservations
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param body body UpdateReservationRequest true "Reservation"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid reservation ID")
	}
	var req UpdateReservationRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}

	checkIn, err := domain.ParseDate("checkInDate", req.CheckInDate)
	if err != nil {
		return response.FromError(c, err)
	}
	checkOut, err := domain.ParseDate("checkOutDate", req.CheckOutDate)
	if err != nil {
		return response.FromError(c, err)
	}

	err = h.reservationService.UpdateReservation(c.UserContext(), id, &services.UpdateReservationInput{
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		StaffNotes:     req.StaffNotes,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Reservation updated successfully", nil)
}
