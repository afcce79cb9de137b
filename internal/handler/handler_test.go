package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliox00/Sistema-de-reservas/internal/availability"
	"github.com/Eliox00/Sistema-de-reservas/internal/model"
	"github.com/Eliox00/Sistema-de-reservas/internal/repository"
)

// jsonCtx builds an echo context carrying a JSON body, the way requests
// arrive after the JWT middleware has run.
func jsonCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m["error"]
}

func TestGetUserIDNumericVariants(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want uint64
	}{
		{"uint64", uint64(9), 9},
		{"int", int(9), 9},
		{"int64", int64(9), 9},
		{"float64", float64(9), 9}, // what encoding/json hands back
		{"string", "9", 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := jsonCtx(t, http.MethodGet, "/v1/me", "")
			c.Set("user_id", tc.val)
			got, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetUserIDRejectsGarbage(t *testing.T) {
	c, _ := jsonCtx(t, http.MethodGet, "/v1/me", "")
	c.Set("user_id", "not-a-number")
	_, err := getUserID(c)
	assert.Error(t, err)

	c2, _ := jsonCtx(t, http.MethodGet, "/v1/me", "")
	_, err = getUserID(c2) // nothing set at all
	assert.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	c, _ := jsonCtx(t, http.MethodGet, "/v1/rooms", "")
	c.Set("role", "ADMIN")
	assert.True(t, isAdmin(c))

	c2, _ := jsonCtx(t, http.MethodGet, "/v1/rooms", "")
	c2.Set("role", "USER")
	assert.False(t, isAdmin(c2))

	c3, _ := jsonCtx(t, http.MethodGet, "/v1/rooms", "")
	assert.False(t, isAdmin(c3))
}

func TestSlotErrMessagePerSentinel(t *testing.T) {
	cases := map[error]string{
		availability.ErrMissingFields: "required",
		availability.ErrBadDate:       "YYYY-MM-DD",
		availability.ErrBadTime:       "HH:MM",
		availability.ErrEndNotAfter:   "after start_time",
		availability.ErrDateInPast:    "past",
		availability.ErrDateTooFar:    "30-day",
		availability.ErrOutsideHours:  "opening hours",
	}
	for err, fragment := range cases {
		assert.Contains(t, slotErrMessage(err), fragment)
	}
}

func TestBuildRoomViewMasksOccupantIdentity(t *testing.T) {
	room := model.Room{ID: 3, Name: "Sala de pesas", Active: true}
	occ := model.Reservation{
		ID: 41, RoomID: 3, UserName: "Ana", UserEmail: "ana@centro.com",
		Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00",
		Status: model.ReservationActive,
	}
	st := availability.Status{State: model.StateOccupied, Occupant: &occ}

	asUser := buildRoomView(room, st, false)
	require.NotNil(t, asUser.Occupant)
	assert.Equal(t, uint64(41), asUser.Occupant.ReservationID)
	assert.Empty(t, asUser.Occupant.UserName, "identity hidden from regular users")
	assert.Empty(t, asUser.Occupant.UserEmail)
	assert.Equal(t, "10:00", asUser.Occupant.StartTime)

	asAdmin := buildRoomView(room, st, true)
	require.NotNil(t, asAdmin.Occupant)
	assert.Equal(t, "Ana", asAdmin.Occupant.UserName)
	assert.Equal(t, "ana@centro.com", asAdmin.Occupant.UserEmail)
}

func TestBuildRoomViewAvailableHasNoOccupant(t *testing.T) {
	room := model.Room{ID: 3, Name: "Cancha 1", Active: true}
	v := buildRoomView(room, availability.Status{State: model.StateAvailable}, true)
	assert.Equal(t, model.StateAvailable, v.State)
	assert.Nil(t, v.Occupant)
}

func TestNormalizeEquipmentDropsBlanks(t *testing.T) {
	got := normalizeEquipment([]string{" balones ", "", "  ", "red"})
	assert.Equal(t, []string{"balones", "red"}, got)
}

// Validation-only paths below never reach the database, so handlers can be
// constructed over nil connections.

func newRoomHandler() *RoomHandler {
	return NewRoomHandler(repository.NewRoomRepo(nil), repository.NewReservationRepo(nil))
}

func newReservationHandler() *ReservationHandler {
	return NewReservationHandler(repository.NewRoomRepo(nil), repository.NewReservationRepo(nil), repository.NewUserRepo(nil))
}

func TestCreateRoomRequiresName(t *testing.T) {
	h := newRoomHandler()
	c, rec := jsonCtx(t, http.MethodPost, "/v1/rooms", `{"name":"   "}`)
	require.NoError(t, h.CreateRoom(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", errBody(t, rec))
}

func TestUpdateRoomRejectsBadID(t *testing.T) {
	h := newRoomHandler()
	c, rec := jsonCtx(t, http.MethodPut, "/v1/rooms/abc", `{"name":"Cancha 1"}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.UpdateRoom(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetRoomActiveRequiresFlag(t *testing.T) {
	h := newRoomHandler()
	c, rec := jsonCtx(t, http.MethodPatch, "/v1/rooms/5/active", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.SetRoomActive(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "active is required", errBody(t, rec))
}

func TestListRoomsRejectsUnknownAvailabilityFilter(t *testing.T) {
	h := newRoomHandler()
	c, rec := jsonCtx(t, http.MethodGet, "/v1/rooms?availability=busy", "")
	require.NoError(t, h.ListRooms(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReservationRejectsUnauthenticated(t *testing.T) {
	h := newReservationHandler()
	c, rec := jsonCtx(t, http.MethodPost, "/v1/reservations", `{"room_id":1}`)
	require.NoError(t, h.CreateReservation(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReservationValidatesSlotBeforeDB(t *testing.T) {
	h := newReservationHandler()
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	cases := []struct {
		name string
		body string
		frag string
	}{
		{"missing room", `{"date":"` + tomorrow + `","start_time":"10:00","end_time":"11:00"}`, "room_id"},
		{"bad date", `{"room_id":1,"date":"10/03/2025","start_time":"10:00","end_time":"11:00"}`, "YYYY-MM-DD"},
		{"end before start", `{"room_id":1,"date":"` + tomorrow + `","start_time":"11:00","end_time":"10:00"}`, "after start_time"},
		{"outside hours", `{"room_id":1,"date":"` + tomorrow + `","start_time":"05:00","end_time":"07:00"}`, "opening hours"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonCtx(t, http.MethodPost, "/v1/reservations", tc.body)
			c.Set("user_id", uint64(1))
			require.NoError(t, h.CreateReservation(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errBody(t, rec), tc.frag)
		})
	}
}

func TestGetReservationRejectsBadID(t *testing.T) {
	h := newReservationHandler()
	c, rec := jsonCtx(t, http.MethodGet, "/v1/reservations/0", "")
	c.Set("user_id", uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("0")
	require.NoError(t, h.GetReservation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinalizeReservationRejectsBadID(t *testing.T) {
	h := NewAdminReservationHandler(repository.NewRoomRepo(nil), repository.NewReservationRepo(nil))
	c, rec := jsonCtx(t, http.MethodPost, "/v1/admin/reservations/x/finalize", "")
	c.Set("user_id", uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("x")
	require.NoError(t, h.FinalizeReservation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidatesInput(t *testing.T) {
	h := &AuthHandler{} // validation happens before any dependency is touched

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register", `{"email":"","password":""}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c2, rec2 := jsonCtx(t, http.MethodPost, "/v1/auth/register", `{"email":"ana@centro.com","password":"123"}`)
	require.NoError(t, h.Register(c2))
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
	assert.Contains(t, errBody(t, rec2), "at least 6")
}

func TestLogoutAllRequiresAuthenticatedUser(t *testing.T) {
	h := &AuthHandler{}
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/logout-all", "")
	require.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBuildStatsCountsByLifecycleAndState(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	today := now.Format("2006-01-02")

	rooms := []model.Room{
		{ID: 1, Name: "Cancha 1", Active: true},   // occupied right now
		{ID: 2, Name: "Gimnasio", Active: true},   // free
		{ID: 3, Name: "Sala cerrada", Active: false},
	}
	all := []model.Reservation{
		{ID: 1, RoomID: 1, Status: model.ReservationActive, Date: today,
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)},
		{ID: 2, RoomID: 2, Status: model.ReservationActive, Date: today,
			StartsAt: now.Add(2 * time.Hour), EndsAt: now.Add(3 * time.Hour)},
		{ID: 3, RoomID: 1, Status: model.ReservationFinalized, Date: "2025-03-01",
			StartsAt: now.AddDate(0, 0, -9), EndsAt: now.AddDate(0, 0, -9).Add(time.Hour)},
	}

	resp := buildStats(rooms, all, now)

	assert.Equal(t, 3, resp.Reservations.Total)
	assert.Equal(t, 2, resp.Reservations.Active)
	assert.Equal(t, 1, resp.Reservations.Finalized)
	assert.Equal(t, 2, resp.Reservations.Today)

	assert.Equal(t, 3, resp.Rooms.Total)
	assert.Equal(t, 1, resp.Rooms.Occupied, "only the room whose slot contains now")
	assert.Equal(t, 1, resp.Rooms.Available, "a future slot does not occupy a room")
	assert.Equal(t, 1, resp.Rooms.Inactive)
	assert.Equal(t, now, resp.AsOf)
}

func TestBuildStatsFinalizedRoomIsFreeAgain(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rooms := []model.Room{{ID: 1, Name: "Cancha 1", Active: true}}
	all := []model.Reservation{
		// would occupy the room right now, but an admin ended it early
		{ID: 1, RoomID: 1, Status: model.ReservationFinalized, Date: now.Format("2006-01-02"),
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)},
	}

	resp := buildStats(rooms, all, now)
	assert.Equal(t, 1, resp.Rooms.Available)
	assert.Equal(t, 0, resp.Rooms.Occupied)
	assert.Equal(t, 1, resp.Reservations.Finalized)
	assert.Equal(t, 0, resp.Reservations.Active)
}

func TestRefreshRequiresToken(t *testing.T) {
	h := &AuthHandler{}
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"  "}`)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
