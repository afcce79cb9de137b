package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/Eliox00/Sistema-de-reservas/internal/model"
)

// ReservationRepo provides persistence for reservations.  Reservations
// are append-only history: rows are inserted when a booking is made and
// updated exactly once when an administrator finalizes them.  They are
// never deleted, not even when their room is removed.  All timestamp
// fields are stored in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, room_id, room_name, user_id, user_name, user_email,
       res_date, start_time, end_time, starts_at, ends_at, status, created_at, finalized_at`

// scanReservation reads one row into a model.Reservation.
func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
    var (
        res         model.Reservation
        finalizedAt sql.NullTime
    )
    err := row.Scan(&res.ID, &res.RoomID, &res.RoomName, &res.UserID, &res.UserName,
        &res.UserEmail, &res.Date, &res.StartTime, &res.EndTime,
        &res.StartsAt, &res.EndsAt, &res.Status, &res.CreatedAt, &finalizedAt)
    if err != nil {
        return model.Reservation{}, err
    }
    if finalizedAt.Valid {
        t := finalizedAt.Time
        res.FinalizedAt = &t
    }
    return res, nil
}

// CreateTx inserts a new ACTIVE reservation within the scope of an
// existing transaction.  The caller holds the room row lock and has
// already run the conflict check; the caller must commit or rollback.
// The generated ID and column defaults are populated on the provided
// record.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations
               (room_id, room_name, user_id, user_name, user_email,
                res_date, start_time, end_time, starts_at, ends_at, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.RoomID, res.RoomName, res.UserID, res.UserName, res.UserEmail,
        res.Date, res.StartTime, res.EndTime, res.StartsAt.UTC(), res.EndsAt.UTC(),
        model.ReservationActive)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)

    // Query back the full row to populate timestamps and defaults.
    const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    fresh, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
    if err != nil {
        return err
    }
    *res = fresh
    return nil
}

// ListActiveByRoomTx returns the ACTIVE reservations for one room
// inside a transaction.  It is the snapshot the conflict check runs
// against while the room row lock is held, so no reservation can be
// inserted for the room between the check and the caller's write.
func (r *ReservationRepo) ListActiveByRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations
               WHERE room_id = ? AND status = ?`
    rows, err := tx.QueryContext(ctx, q, roomID, model.ReservationActive)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectReservations(rows)
}

// ListActive returns every ACTIVE reservation.  Room status pages feed
// this snapshot into the availability engine together with the room
// list; the engine filters per room.
func (r *ReservationRepo) ListActive(ctx context.Context) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE status = ?`
    rows, err := r.db.QueryContext(ctx, q, model.ReservationActive)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectReservations(rows)
}

// ListAll returns every reservation ordered by creation time
// descending (newest first).  Used by the administration panel.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectReservations(rows)
}

// ListByUser returns the given user's reservations ordered by creation
// time descending.  When no reservations exist, an empty slice is
// returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations
               WHERE user_id = ? ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectReservations(rows)
}

// GetByID retrieves a single reservation.  It returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    return &res, nil
}

// Finalize transitions a reservation from ACTIVE to FINALIZED and
// records the finalization instant.  It returns ErrReservationNotFound
// when the reservation does not exist and ErrConflict when it has
// already been finalized, so the transition happens at most once.
func (r *ReservationRepo) Finalize(ctx context.Context, id uint64, at time.Time) (*model.Reservation, error) {
    const q = `UPDATE reservations SET status = ?, finalized_at = ?
               WHERE id = ? AND status = ?`
    res, err := r.db.ExecContext(ctx, q,
        model.ReservationFinalized, at.UTC(), id, model.ReservationActive)
    if err != nil {
        return nil, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return nil, err
    }
    if n == 0 {
        // Either missing or already finalized; look to tell them apart.
        existing, err := r.GetByID(ctx, id)
        if err != nil {
            return nil, err
        }
        if existing.Status == model.ReservationFinalized {
            return nil, ErrConflict
        }
        return nil, ErrReservationNotFound
    }
    return r.GetByID(ctx, id)
}

// collectReservations drains a result set into a slice.
func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
    out := make([]model.Reservation, 0)
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
