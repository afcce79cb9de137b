package repository // repository holds data access logic for domain entities

import (
    "context"      // context is used to manage deadlines and cancellation
    "database/sql" // sql provides DB primitives
    "errors"       // errors package allows sentinel error comparisons
    "strings"      // strings joins and splits the equipment list

    "github.com/Eliox00/Sistema-de-reservas/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  Rooms carry no derived
// state: the AVAILABLE/OCCUPIED/INACTIVE display status is computed by
// the availability package from the reservation set, never stored
// here.
type RoomRepo struct {
    db *sql.DB // db is the underlying database connection
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
    return &RoomRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions
// that span the reservation repository as well.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomColumns = `id, name, description, location, capacity, equipment, active, created_at, updated_at`

// scanRoom reads one row into a model.Room.  The equipment column is a
// comma separated list; NULL and the empty string both mean "none".
func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
    var (
        rm        model.Room
        equipment sql.NullString
    )
    err := row.Scan(&rm.ID, &rm.Name, &rm.Description, &rm.Location, &rm.Capacity,
        &equipment, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt)
    if err != nil {
        return model.Room{}, err
    }
    if equipment.Valid && equipment.String != "" {
        rm.Equipment = strings.Split(equipment.String, ",")
    }
    return rm, nil
}

// equipmentValue flattens the equipment list into the stored form.
func equipmentValue(equipment []string) sql.NullString {
    if len(equipment) == 0 {
        return sql.NullString{}
    }
    return sql.NullString{String: strings.Join(equipment, ","), Valid: true}
}

// Create inserts a new room and populates the generated ID plus the
// column defaults (active flag, timestamps) on the provided model.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
    const qInsert = `INSERT INTO rooms (name, description, location, capacity, equipment)
                     VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert,
        rm.Name, rm.Description, rm.Location, rm.Capacity, equipmentValue(rm.Equipment))
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rm.ID = uint64(id)

    // Read the record back so active, created_at and updated_at are set.
    const qSelect = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
    fresh, err := scanRoom(r.db.QueryRowContext(ctx, qSelect, rm.ID))
    if err != nil {
        return err
    }
    *rm = fresh
    return nil
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when
// no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
    rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &rm, nil
}

// LockByIDTx loads a room inside a transaction while taking a row lock
// on it.  The reservation conflict check runs under this lock so two
// concurrent bookings for the same room serialize on the room row
// instead of both passing the check against the same pre-write state.
func (r *RoomRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ? FOR UPDATE`
    rm, err := scanRoom(tx.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &rm, nil
}

// List returns all rooms ordered by name.  When q is non-empty, only
// rooms whose name or description contains the term (case insensitive)
// are returned; the original UI offered the same substring search.
func (r *RoomRepo) List(ctx context.Context, q string) ([]model.Room, error) {
    query := `SELECT ` + roomColumns + ` FROM rooms`
    var args []any
    if term := strings.TrimSpace(q); term != "" {
        query += ` WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?`
        like := "%" + strings.ToLower(term) + "%"
        args = append(args, like, like)
    }
    query += ` ORDER BY name`

    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Room, 0)
    for rows.Next() {
        rm, err := scanRoom(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, rm)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update persists new values for a room's editable fields.  It returns
// ErrRoomNotFound when the room does not exist.  The active flag is
// toggled separately via SetActive.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
    const q = `UPDATE rooms SET name = ?, description = ?, location = ?, capacity = ?, equipment = ?
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q,
        rm.Name, rm.Description, rm.Location, rm.Capacity, equipmentValue(rm.Equipment), rm.ID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // RowsAffected is also 0 for a no-op update, so confirm existence.
        if _, err := r.GetByID(ctx, rm.ID); err != nil {
            return err
        }
    }
    return nil
}

// SetActive flips the room's active flag.  Inactive rooms keep their
// reservations; they only stop being reservable and display as
// INACTIVE.
func (r *RoomRepo) SetActive(ctx context.Context, id uint64, active bool) error {
    const q = `UPDATE rooms SET active = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, active, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        if _, err := r.GetByID(ctx, id); err != nil {
            return err
        }
    }
    return nil
}

// Delete removes a room.  Reservations referencing it are deliberately
// left in place: the reference is weak and history must survive room
// removal.  Returns ErrRoomNotFound when no row was deleted.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    const q = `DELETE FROM rooms WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrRoomNotFound
    }
    return nil
}
