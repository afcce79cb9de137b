package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Eliox00/Sistema-de-reservas/internal/availability"
	"github.com/Eliox00/Sistema-de-reservas/internal/model"
	"github.com/Eliox00/Sistema-de-reservas/internal/queue"
	"github.com/Eliox00/Sistema-de-reservas/internal/repository"
	publisher "github.com/Eliox00/Sistema-de-reservas/internal/service"
)

// AdminReservationHandler serves the administrator panel: the full
// reservation ledger, early finalization and the stats summary.  Routes
// using it sit behind the ADMIN role middleware.
type AdminReservationHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
}

func NewAdminReservationHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *AdminReservationHandler {
	return &AdminReservationHandler{Rooms: rooms, Reservations: reservations}
}

// ListAllReservations handles GET /v1/admin/reservations, newest first.
func (h *AdminReservationHandler) ListAllReservations(c echo.Context) error {
	items, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// FinalizeReservation handles POST /v1/admin/reservations/:id/finalize.
// It ends an ACTIVE reservation ahead of schedule, freeing the room
// immediately.  Finalizing twice is a conflict, not a no-op, so the admin
// UI can tell the two situations apart.
func (h *AdminReservationHandler) FinalizeReservation(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	now := time.Now().UTC()
	res, err := h.Reservations.Finalize(c.Request().Context(), id, now)
	if err != nil {
		switch err {
		case repository.ErrReservationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already finalized"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	go func(ev queue.ReservationFinalizedEvent) {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := publisher.PublishReservationFinalized(pctx, ev); err != nil {
			log.Printf("reservation: publish finalized event failed: %v", err)
		}
	}(queue.ReservationFinalizedEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		RoomName:      res.RoomName,
		UserID:        res.UserID,
		FinalizedBy:   adminID,
		FinalizedAt:   now.Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, res)
}

type statsResp struct {
	Rooms struct {
		Total     int `json:"total"`
		Available int `json:"available"`
		Occupied  int `json:"occupied"`
		Inactive  int `json:"inactive"`
	} `json:"rooms"`
	Reservations struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Finalized int `json:"finalized"`
		Today     int `json:"today"`
	} `json:"reservations"`
	AsOf time.Time `json:"as_of"`
}

// buildStats derives the panel numbers from a snapshot of all rooms and all
// reservations at a single instant.  Room states come through the same
// derivation used by the public listing, so the panel and the listing never
// disagree about a room.
func buildStats(rooms []model.Room, all []model.Reservation, now time.Time) statsResp {
	today := now.Format("2006-01-02")

	active := make([]model.Reservation, 0, len(all))
	var resp statsResp
	resp.AsOf = now
	resp.Reservations.Total = len(all)
	for _, r := range all {
		switch r.Status {
		case model.ReservationActive:
			active = append(active, r)
			resp.Reservations.Active++
		case model.ReservationFinalized:
			resp.Reservations.Finalized++
		}
		if r.Date == today {
			resp.Reservations.Today++
		}
	}

	resp.Rooms.Total = len(rooms)
	for _, rm := range rooms {
		switch availability.RoomStatus(rm, active, now).State {
		case model.StateAvailable:
			resp.Rooms.Available++
		case model.StateOccupied:
			resp.Rooms.Occupied++
		case model.StateInactive:
			resp.Rooms.Inactive++
		}
	}
	return resp
}

// AdminStats handles GET /v1/admin/stats.
func (h *AdminReservationHandler) AdminStats(c echo.Context) error {
	ctx := c.Request().Context()
	rooms, err := h.Rooms.List(ctx, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	all, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, buildStats(rooms, all, time.Now().UTC()))
}
