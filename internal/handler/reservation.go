package handler

import (
	"context"      // detached context for best-effort event publishing
	"database/sql" // for sentinel errors returned from repository
	"errors"       // for errors.Is comparisons
	"log"          // publish failures are logged, never surfaced
	"net/http"     // HTTP status codes
	"strconv"      // parsing path parameters
	"time"         // working with timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/Eliox00/Sistema-de-reservas/internal/availability"
	"github.com/Eliox00/Sistema-de-reservas/internal/model"
	"github.com/Eliox00/Sistema-de-reservas/internal/queue"
	"github.com/Eliox00/Sistema-de-reservas/internal/repository"
	publisher "github.com/Eliox00/Sistema-de-reservas/internal/service"
)

// ReservationHandler groups the repositories needed to create and list
// reservations.  All methods assume JWT authentication has already been
// performed by middleware; methods may return 401 Unauthorized if the user
// ID cannot be extracted from the context.  Creation runs inside a
// transaction with the room row locked so two overlapping requests cannot
// both pass the conflict check.
type ReservationHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Users        *repository.UserRepo
}

// NewReservationHandler constructs a ReservationHandler.  All dependencies
// must be non-nil.
func NewReservationHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, users *repository.UserRepo) *ReservationHandler {
	if rooms == nil || reservations == nil || users == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Rooms: rooms, Reservations: reservations, Users: users}
}

type createReservationReq struct {
	RoomID    uint64 `json:"room_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// slotErrMessage maps slot validation failures to client-facing messages.
// All of them are 400s; the message carries the precise reason.
func slotErrMessage(err error) string {
	switch {
	case errors.Is(err, availability.ErrMissingFields):
		return "room_id, date, start_time and end_time are required"
	case errors.Is(err, availability.ErrBadDate):
		return "date must be YYYY-MM-DD"
	case errors.Is(err, availability.ErrBadTime):
		return "times must be HH:MM"
	case errors.Is(err, availability.ErrEndNotAfter):
		return "end_time must be after start_time"
	case errors.Is(err, availability.ErrDateInPast):
		return "date is in the past"
	case errors.Is(err, availability.ErrDateTooFar):
		return "date is beyond the 30-day booking window"
	case errors.Is(err, availability.ErrOutsideHours):
		return "slot must fall within opening hours (06:00-23:00)"
	default:
		return "invalid slot"
	}
}

// CreateReservation handles POST /v1/reservations.  The slot is validated
// first so malformed requests never touch the database.  Then, inside a
// transaction, the room row is locked, the active reservations for that
// room are re-read under the lock, and the overlap check runs against that
// snapshot.  Only if no conflict exists is the row inserted and the
// transaction committed.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body createReservationReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	slot, err := availability.ParseSlot(body.Date, body.StartTime, body.EndTime, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": slotErrMessage(err)})
	}

	ctx := c.Request().Context()
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Rooms.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// lock the room row; concurrent creates for the same room serialize here
	room, err := h.Rooms.LockByIDTx(ctx, tx, body.RoomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !room.Active {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not accepting reservations"})
	}

	existing, err := h.Reservations.ListActiveByRoomTx(ctx, tx, room.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if availability.HasConflict(room.ID, slot.StartsAt, slot.EndsAt, existing) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is already reserved for that slot"})
	}

	res := &model.Reservation{
		RoomID:    room.ID,
		RoomName:  room.Name, // denormalized so listings survive room renames
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		StartsAt:  slot.StartsAt,
		EndsAt:    slot.EndsAt,
		Status:    model.ReservationActive,
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// best-effort event; the reservation stands even if the broker is down
	go func(ev queue.ReservationCreatedEvent) {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := publisher.PublishReservationCreated(pctx, ev); err != nil {
			log.Printf("reservation: publish created event failed: %v", err)
		}
	}(queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		RoomName:      res.RoomName,
		UserID:        res.UserID,
		UserName:      res.UserName,
		UserEmail:     res.UserEmail,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, res)
}

// ListMyReservations handles GET /v1/my-reservations and returns the
// caller's reservations, newest first.
func (h *ReservationHandler) ListMyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// GetReservation handles GET /v1/reservations/:id.  Owners see their own
// reservations; admins see any.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.UserID != userID && !isAdmin(c) {
		// hide existence from other users
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, res)
}
