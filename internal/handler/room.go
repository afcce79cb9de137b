package handler // handler package contains administrator room management handlers

import (
    "net/http" // http provides status code constants
    "strconv"  // strconv parses string identifiers to numeric types
    "strings"  // strings offers trimming utilities

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/Eliox00/Sistema-de-reservas/internal/model"      // model holds the domain structs
    "github.com/Eliox00/Sistema-de-reservas/internal/repository" // repository holds database access
)

// RoomHandler bundles the repositories the room endpoints need.
type RoomHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Reservations: reservations}
}

type roomReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Capacity    uint32   `json:"capacity"`
	Equipment   []string `json:"equipment"`
	Active      *bool    `json:"active"`
}

func normalizeEquipment(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// CreateRoom handles POST /v1/rooms and registers a new facility room.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var body roomReq
	if err := c.Bind(&body); err != nil { // attempt to bind the request body
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" { // name is the only required field
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	room := &model.Room{
		Name:        name,
		Description: strings.TrimSpace(body.Description),
		Location:    strings.TrimSpace(body.Location),
		Capacity:    body.Capacity,
		Equipment:   normalizeEquipment(body.Equipment),
		Active:      true, // rooms are bookable unless the payload says otherwise
	}
	if body.Active != nil {
		room.Active = *body.Active
	}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		if strings.Contains(err.Error(), "1062") { // duplicate key means the name is taken
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /v1/rooms/:id and replaces the room's editable fields.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64) // parse the room ID from the URL
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body roomReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	existing, err := h.Rooms.GetByID(c.Request().Context(), id) // verify the room exists first
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	updated := &model.Room{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(body.Description),
		Location:    strings.TrimSpace(body.Location),
		Capacity:    body.Capacity,
		Equipment:   normalizeEquipment(body.Equipment),
		Active:      existing.Active, // PUT does not toggle availability, PATCH does
	}
	if body.Active != nil {
		updated.Active = *body.Active
	}
	if err := h.Rooms.Update(c.Request().Context(), updated); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	fresh, err := h.Rooms.GetByID(c.Request().Context(), id) // read back so timestamps are current
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// SetRoomActive handles PATCH /v1/rooms/:id/active and toggles whether the
// room accepts new reservations.  Existing reservations are untouched:
// deactivating a room only blocks future bookings and flips the derived
// state to INACTIVE.
func (h *RoomHandler) SetRoomActive(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Active *bool `json:"active"` // pointer so a missing field is distinguishable from false
	}
	if err := c.Bind(&body); err != nil || body.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active is required"})
	}
	if err := h.Rooms.SetActive(c.Request().Context(), id, *body.Active); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	fresh, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// DeleteRoom handles DELETE /v1/rooms/:id.  Rooms with reservation history
// keep their rows referenced, so the FK makes the delete fail; admins should
// deactivate such rooms instead.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		if strings.Contains(err.Error(), "1451") { // FK restriction: reservations reference this room
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has reservations; deactivate it instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
