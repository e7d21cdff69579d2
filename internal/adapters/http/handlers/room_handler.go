package handlers

import (
	"bytes"

	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/core/services"
	"hotel-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoomHandler handles room inventory endpoints
type RoomHandler struct {
	roomService        *services.RoomService
	reservationService *services.ReservationService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *services.RoomService, reservationService *services.ReservationService) *RoomHandler {
	return &RoomHandler{roomService: roomService, reservationService: reservationService}
}

// RoomRequest describes one room of an explicit list
type RoomRequest struct {
	RoomNumber    string  `json:"roomNumber" validate:"required,max=20"`
	FloorNumber   int     `json:"floorNumber"`
	Type          string  `json:"type" validate:"required,oneof=Standard Deluxe Suite"`
	PricePerNight float64 `json:"pricePerNight" validate:"gte=0"`
	MaxGuests     int     `json:"maxGuests" validate:"required,min=1"`
}

// AddRoomsRequest accepts either a generated batch (startNumber + count) or an explicit list.
// Batch fields are checked by the service when rooms is empty.
type AddRoomsRequest struct {
	StartNumber   string        `json:"startNumber" validate:"omitempty,numeric,max=19"`
	Count         int           `json:"count" validate:"omitempty,min=1,max=500"`
	FloorNumber   int           `json:"floorNumber"`
	Type          string        `json:"type" validate:"omitempty,oneof=Standard Deluxe Suite"`
	PricePerNight float64       `json:"pricePerNight" validate:"gte=0"`
	MaxGuests     int           `json:"maxGuests" validate:"omitempty,min=1"`
	Rooms         []RoomRequest `json:"rooms" validate:"omitempty,dive"`
}

// RemoveRoomsRequest lists rooms to delete
type RemoveRoomsRequest struct {
	RoomIDs []uint `json:"roomIds" validate:"required,min=1"`
}

// RoomStatusRequest sets a room status
type RoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Available Maintenance"`
}

// List lists all rooms
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
	rooms, err := h.roomService.ListRooms(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Rooms retrieved successfully", rooms)
}

// Get gets a room
// @Summary Get room
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid room ID")
	}
	room, err := h.roomService.GetRoom(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Room retrieved successfully", room)
}

// CurrentReservation returns the room's Active reservation with its guest
// @Summary Current reservation of a room
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id}/reservation [get]
func (h *RoomHandler) CurrentReservation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid room ID")
	}
	detail, err := h.reservationService.GetRoomReservation(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Reservation retrieved successfully", detail)
}

// CheckConflict checks a stay against the room's Active reservations
// @Summary Check date conflict
// @Description conflict=true means the dates collide with an Active reservation
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param checkIn query string true "YYYY-MM-DD"
// @Param checkOut query string true "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id}/conflict [get]
func (h *RoomHandler) CheckConflict(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid room ID")
	}
	checkIn, err := domain.ParseDate("checkIn", c.Query("checkIn"))
	if err != nil {
		return response.FromError(c, err)
	}
	checkOut, err := domain.ParseDate("checkOut", c.Query("checkOut"))
	if err != nil {
		return response.FromError(c, err)
	}

	conflict, err := h.reservationService.CheckAvailability(c.UserContext(), id, checkIn, checkOut)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Availability checked", fiber.Map{"conflict": conflict})
}

// Add creates rooms
// @Summary Add rooms
// @Description Either startNumber/count/floorNumber/type/pricePerNight/maxGuests, an explicit rooms list or a bare array of rooms
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddRoomsRequest true "Rooms"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /rooms [post]
func (h *RoomHandler) Add(c *fiber.Ctx) error {
	var req AddRoomsRequest
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 && body[0] == '[' {
		// bare array form: [{roomNumber, floorNumber, type, pricePerNight, maxGuests}]
		if err := c.BodyParser(&req.Rooms); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
		if len(req.Rooms) == 0 {
			return response.BadRequest(c, "At least one room is required")
		}
		for i := range req.Rooms {
			if err := validate.Struct(&req.Rooms[i]); err != nil {
				return response.BadRequest(c, validationMessage(err))
			}
		}
	} else if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}

	var rooms []*models.Room
	var err error
	if len(req.Rooms) > 0 {
		list := make([]*services.RoomInput, 0, len(req.Rooms))
		for _, r := range req.Rooms {
			list = append(list, &services.RoomInput{
				RoomNumber:    r.RoomNumber,
				FloorNumber:   r.FloorNumber,
				Type:          domain.RoomType(r.Type),
				PricePerNight: r.PricePerNight,
				MaxGuests:     r.MaxGuests,
			})
		}
		rooms, err = h.roomService.AddRoomList(c.UserContext(), list)
	} else {
		rooms, err = h.roomService.AddRooms(c.UserContext(), &services.AddRoomsInput{
			StartNumber:   req.StartNumber,
			Count:         req.Count,
			FloorNumber:   req.FloorNumber,
			Type:          domain.RoomType(req.Type),
			PricePerNight: req.PricePerNight,
			MaxGuests:     req.MaxGuests,
		})
	}
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "Rooms added successfully", rooms)
}

// Remove deletes rooms
// @Summary Remove rooms
// @Description Fails without deleting anything when one of the rooms is Occupied
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RemoveRoomsRequest true "Room IDs"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /rooms [delete]
func (h *RoomHandler) Remove(c *fiber.Ctx) error {
	var req RemoveRoomsRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}

	deleted, err := h.roomService.RemoveRooms(c.UserContext(), req.RoomIDs)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Rooms removed successfully", fiber.Map{"deleted": deleted})
}

// UpdateStatus toggles maintenance
// @Summary Update room status
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param body body RoomStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /rooms/{id}/status [put]
func (h *RoomHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid room ID")
	}
	var req RoomStatusRequest
	if msg, ok := bindJSON(c, &req); !ok {
		return response.BadRequest(c, msg)
	}

	if err := h.roomService.SetRoomStatus(c.UserContext(), id, domain.RoomStatus(req.Status)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Room status updated successfully", nil)
}

// Checkout checks out the room's current reservation
// @Summary Checkout room
// @Description Succeeds without changes when the room has no Active reservation
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id}/checkout [post]
func (h *RoomHandler) Checkout(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid room ID")
	}

	reservationID, err := h.reservationService.CheckoutReservation(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	if reservationID == 0 {
		return response.Success(c, "No active reservation to check out", nil)
	}
	return response.Success(c, "Checked out successfully", fiber.Map{"reservationId": reservationID})
}
