package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Eliox00/Sistema-de-reservas/internal/availability"
    "github.com/Eliox00/Sistema-de-reservas/internal/model"
    "github.com/Eliox00/Sistema-de-reservas/internal/repository"
)

// occupantPart is the slimmed-down reservation shown on a room card.  Only
// admins get to see who is occupying; regular users see the time window.
type occupantPart struct {
	ReservationID uint64 `json:"reservation_id"`
	UserName      string `json:"user_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

// roomView is a room plus its state derived at request time.
type roomView struct {
	model.Room
	State    model.RoomState `json:"state"`
	Occupant *occupantPart   `json:"occupant,omitempty"`
}

func buildRoomView(room model.Room, st availability.Status, admin bool) roomView {
	v := roomView{Room: room, State: st.State}
	if st.Occupant != nil {
		o := &occupantPart{
			ReservationID: st.Occupant.ID,
			Date:          st.Occupant.Date,
			StartTime:     st.Occupant.StartTime,
			EndTime:       st.Occupant.EndTime,
		}
		if admin {
			o.UserName = st.Occupant.UserName
			o.UserEmail = st.Occupant.UserEmail
		}
		v.Occupant = o
	}
	return v
}

// ListRooms handles GET /v1/rooms.  Supports a free-text search over name
// and description via ?q= and a derived-state filter via
// ?availability=available|occupied|all (default all).  States are computed
// from a single snapshot of the active reservations so one request never
// shows two rooms evaluated at different instants.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	filter := strings.ToLower(strings.TrimSpace(c.QueryParam("availability")))
	switch filter {
	case "", "all", "available", "occupied":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "availability must be available, occupied or all"})
	}

	ctx := c.Request().Context()
	rooms, err := h.Rooms.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	active, err := h.Reservations.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	now := time.Now().UTC()
	admin := isAdmin(c)
	out := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		st := availability.RoomStatus(rm, active, now)
		switch filter {
		case "available":
			if st.State != model.StateAvailable {
				continue
			}
		case "occupied":
			if st.State != model.StateOccupied {
				continue
			}
		}
		out = append(out, buildRoomView(rm, st, admin))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out, "as_of": now})
}

// GetRoom handles GET /v1/rooms/:id and returns one room with its state.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	active, err := h.Reservations.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	now := time.Now().UTC()
	st := availability.RoomStatus(*room, active, now)
	view := buildRoomView(*room, st, isAdmin(c))
	return c.JSON(http.StatusOK, echo.Map{"room": view, "as_of": now})
}
