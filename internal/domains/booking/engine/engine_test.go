package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/internal/domains/booking/engine"
	"inn/internal/domains/booking/model"
	roomModel "inn/internal/domains/room/model"
	"inn/shared/constant"
)

func room101(available bool) roomModel.Room {
	return roomModel.Room{
		ID:        101,
		Number:    "101",
		Type:      "double",
		Price:     100,
		Capacity:  2,
		Available: available,
	}
}

func booking(id, roomID int64, checkIn, checkOut, status string) model.Booking {
	return model.Booking{
		ID:       id,
		RoomID:   roomID,
		UserID:   1,
		CheckIn:  date(checkIn),
		CheckOut: date(checkOut),
		Guests:   1,
		Status:   status,
	}
}

func TestAdmit(t *testing.T) {
	tests := []struct {
		name      string
		room      roomModel.Room
		roomFound bool
		existing  []model.Booking
		req       engine.AdmissionRequest
		wantErr   error
	}{
		{
			name:      "empty room admits booking",
			room:      room101(true),
			roomFound: true,
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-01"),
				CheckOut: date("2025-06-03"),
				Guests:   2,
			},
		},
		{
			name:    "unknown room",
			wantErr: engine.ErrRoomNotFound,
			req: engine.AdmissionRequest{
				RoomID:   999,
				CheckIn:  date("2025-06-01"),
				CheckOut: date("2025-06-03"),
				Guests:   1,
			},
		},
		{
			name:      "check-out before check-in",
			room:      room101(true),
			roomFound: true,
			wantErr:   engine.ErrInvalidDateRange,
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-05"),
				CheckOut: date("2025-06-01"),
				Guests:   1,
			},
		},
		{
			name:      "zero-night stay",
			room:      room101(true),
			roomFound: true,
			wantErr:   engine.ErrInvalidDateRange,
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-01"),
				CheckOut: date("2025-06-01"),
				Guests:   1,
			},
		},
		{
			name:      "too many guests",
			room:      room101(true),
			roomFound: true,
			wantErr:   engine.ErrGuestCountInvalid,
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-01"),
				CheckOut: date("2025-06-03"),
				Guests:   3,
			},
		},
		{
			name:      "zero guests",
			room:      room101(true),
			roomFound: true,
			wantErr:   engine.ErrGuestCountInvalid,
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-01"),
				CheckOut: date("2025-06-03"),
				Guests:   0,
			},
		},
		{
			name:      "availability gate fires before overlap scan",
			room:      room101(false),
			roomFound: true,
			existing: []model.Booking{
				booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusConfirmed),
			},
			wantErr: engine.ErrRoomUnavailable,
			req: engine.AdmissionRequest{
				RoomID: 101,
				// A non-overlapping range is still rejected while the room
				// holds any active booking.
				CheckIn:  date("2025-06-10"),
				CheckOut: date("2025-06-12"),
				Guests:   1,
			},
		},
		{
			name:      "overlapping confirmed booking",
			room:      room101(true),
			roomFound: true,
			existing: []model.Booking{
				booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusConfirmed),
			},
			wantErr: engine.ErrDateConflict,
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-02"),
				CheckOut: date("2025-06-04"),
				Guests:   1,
			},
		},
		{
			name:      "overlapping completed booking still conflicts",
			room:      room101(true),
			roomFound: true,
			existing: []model.Booking{
				booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusCompleted),
			},
			wantErr: engine.ErrDateConflict,
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-02"),
				CheckOut: date("2025-06-04"),
				Guests:   1,
			},
		},
		{
			name:      "cancelled booking frees the dates",
			room:      room101(true),
			roomFound: true,
			existing: []model.Booking{
				booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusCancelled),
			},
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-01"),
				CheckOut: date("2025-06-03"),
				Guests:   2,
			},
		},
		{
			name:      "back to back stay admitted",
			room:      room101(true),
			roomFound: true,
			existing: []model.Booking{
				booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusConfirmed),
			},
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-03"),
				CheckOut: date("2025-06-05"),
				Guests:   1,
			},
		},
		{
			name:      "booking on another room ignored",
			room:      room101(true),
			roomFound: true,
			existing: []model.Booking{
				booking(1, 202, "2025-06-01", "2025-06-03", constant.BookingStatusConfirmed),
			},
			req: engine.AdmissionRequest{
				RoomID:   101,
				CheckIn:  date("2025-06-01"),
				CheckOut: date("2025-06-03"),
				Guests:   1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.Admit(tt.room, tt.roomFound, tt.existing, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAdmit_PreservesNonOverlapInvariant(t *testing.T) {
	room := room101(true)

	requests := []engine.AdmissionRequest{
		{RoomID: 101, CheckIn: date("2025-06-01"), CheckOut: date("2025-06-03"), Guests: 1},
		{RoomID: 101, CheckIn: date("2025-06-02"), CheckOut: date("2025-06-04"), Guests: 1},
		{RoomID: 101, CheckIn: date("2025-06-03"), CheckOut: date("2025-06-05"), Guests: 1},
		{RoomID: 101, CheckIn: date("2025-06-01"), CheckOut: date("2025-06-05"), Guests: 1},
	}

	bookings := []model.Booking{}
	for _, req := range requests {
		if err := engine.Admit(room, true, bookings, req); err != nil {
			continue
		}

		bookings = append(bookings, model.Booking{
			ID:       engine.NextID(bookings),
			RoomID:   req.RoomID,
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
			Guests:   req.Guests,
			Status:   constant.BookingStatusConfirmed,
		})

		// The flag gate is bypassed here on purpose so the overlap scan
		// itself is what keeps the invariant.
	}

	require.NotEmpty(t, bookings)

	for i := range bookings {
		for j := i + 1; j < len(bookings); j++ {
			assert.False(
				t,
				engine.Overlaps(bookings[i].CheckIn, bookings[i].CheckOut, bookings[j].CheckIn, bookings[j].CheckOut),
				"bookings %d and %d overlap", bookings[i].ID, bookings[j].ID,
			)
		}
	}
}

func TestNextID(t *testing.T) {
	assert.Equal(t, int64(1), engine.NextID(nil))
	assert.Equal(t, int64(4), engine.NextID([]model.Booking{
		booking(1, 101, "2025-06-01", "2025-06-02", constant.BookingStatusConfirmed),
		booking(3, 101, "2025-06-05", "2025-06-06", constant.BookingStatusCancelled),
		booking(2, 202, "2025-06-01", "2025-06-02", constant.BookingStatusCompleted),
	}))
}

func TestRecompute(t *testing.T) {
	now := date("2025-06-10")

	tests := []struct {
		name        string
		rooms       []roomModel.Room
		bookings    []model.Booking
		wantFlags   map[int64]bool
		wantChanged []int64
	}{
		{
			name:        "room with zero bookings is available",
			rooms:       []roomModel.Room{room101(false)},
			wantFlags:   map[int64]bool{101: true},
			wantChanged: []int64{101},
		},
		{
			name:  "confirmed future stay blocks the room",
			rooms: []roomModel.Room{room101(true)},
			bookings: []model.Booking{
				booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusConfirmed),
			},
			wantFlags:   map[int64]bool{101: false},
			wantChanged: []int64{101},
		},
		{
			name:  "confirmed in-progress stay blocks the room",
			rooms: []roomModel.Room{room101(true)},
			bookings: []model.Booking{
				booking(1, 101, "2025-06-09", "2025-06-11", constant.BookingStatusConfirmed),
			},
			wantFlags:   map[int64]bool{101: false},
			wantChanged: []int64{101},
		},
		{
			name:  "confirmed stay already ended frees the room",
			rooms: []roomModel.Room{room101(false)},
			bookings: []model.Booking{
				booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusConfirmed),
			},
			wantFlags:   map[int64]bool{101: true},
			wantChanged: []int64{101},
		},
		{
			name:  "cancelled booking never blocks",
			rooms: []roomModel.Room{room101(false)},
			bookings: []model.Booking{
				booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusCancelled),
			},
			wantFlags:   map[int64]bool{101: true},
			wantChanged: []int64{101},
		},
		{
			name:  "completed booking never blocks regardless of dates",
			rooms: []roomModel.Room{room101(false)},
			bookings: []model.Booking{
				booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusCompleted),
			},
			wantFlags:   map[int64]bool{101: true},
			wantChanged: []int64{101},
		},
		{
			name:  "flag already correct reports no change",
			rooms: []roomModel.Room{room101(false)},
			bookings: []model.Booking{
				booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusConfirmed),
			},
			wantFlags:   map[int64]bool{101: false},
			wantChanged: []int64{},
		},
		{
			name: "overlapping confirmed bookings all block without error",
			rooms: []roomModel.Room{
				room101(true),
				{ID: 202, Number: "202", Capacity: 2, Available: true},
			},
			bookings: []model.Booking{
				booking(1, 101, "2025-06-11", "2025-06-13", constant.BookingStatusConfirmed),
				booking(2, 101, "2025-06-12", "2025-06-14", constant.BookingStatusConfirmed),
			},
			wantFlags:   map[int64]bool{101: false, 202: true},
			wantChanged: []int64{101},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, changed := engine.Recompute(tt.rooms, tt.bookings, now)

			require.Len(t, updated, len(tt.rooms))
			for _, room := range updated {
				assert.Equal(t, tt.wantFlags[room.ID], room.Available, "room %d", room.ID)
			}

			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	now := date("2025-06-10")
	rooms := []roomModel.Room{room101(true), {ID: 202, Number: "202", Capacity: 4, Available: false}}
	bookings := []model.Booking{
		booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusConfirmed),
	}

	first, firstChanged := engine.Recompute(rooms, bookings, now)
	second, secondChanged := engine.Recompute(first, bookings, now)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, firstChanged)
	assert.Empty(t, secondChanged)
}

func TestRecompute_CancellationScenario(t *testing.T) {
	// A confirmed future stay blocks room 101; cancelling it must free
	// the room on the next recompute.
	now := date("2025-05-01")
	rooms := []roomModel.Room{room101(true)}
	bookings := []model.Booking{
		booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusConfirmed),
	}

	updated, _ := engine.Recompute(rooms, bookings, now)
	require.False(t, updated[0].Available)

	bookings[0].Status = constant.BookingStatusCancelled

	updated, changed := engine.Recompute(updated, bookings, now)
	assert.True(t, updated[0].Available)
	assert.Equal(t, []int64{101}, changed)
}

func TestOccupied(t *testing.T) {
	now := date("2025-06-10")

	assert.True(t, engine.Occupied(booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusConfirmed), now))
	assert.False(t, engine.Occupied(booking(1, 101, "2025-06-01", "2025-06-03", constant.BookingStatusConfirmed), now))
	assert.False(t, engine.Occupied(booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusCancelled), now))
	assert.False(t, engine.Occupied(booking(1, 101, "2025-06-12", "2025-06-14", constant.BookingStatusCompleted), now))
}

func TestAuthorize(t *testing.T) {
	owned := model.Booking{ID: 1, RoomID: 101, UserID: 7}

	assert.NoError(t, engine.Authorize(owned, 7, constant.RoleUser))
	assert.NoError(t, engine.Authorize(owned, 99, constant.RoleAdmin))
	assert.ErrorIs(t, engine.Authorize(owned, 99, constant.RoleUser), engine.ErrAccessDenied)
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{name: "confirmed to cancelled", current: constant.BookingStatusConfirmed, target: constant.BookingStatusCancelled},
		{name: "confirmed to completed", current: constant.BookingStatusConfirmed, target: constant.BookingStatusCompleted},
		{name: "same status is a no-op", current: constant.BookingStatusConfirmed, target: constant.BookingStatusConfirmed},
		{name: "cancelled no-op", current: constant.BookingStatusCancelled, target: constant.BookingStatusCancelled},
		{name: "cancelled is terminal", current: constant.BookingStatusCancelled, target: constant.BookingStatusConfirmed, wantErr: engine.ErrInvalidStatus},
		{name: "completed is terminal", current: constant.BookingStatusCompleted, target: constant.BookingStatusCancelled, wantErr: engine.ErrInvalidStatus},
		{name: "unknown target", current: constant.BookingStatusConfirmed, target: "paused", wantErr: engine.ErrInvalidStatus},
		{name: "unknown current", current: "pending", target: constant.BookingStatusCancelled, wantErr: engine.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.Transition(tt.current, tt.target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, engine.ValidStatus(constant.BookingStatusConfirmed))
	assert.True(t, engine.ValidStatus(constant.BookingStatusCancelled))
	assert.True(t, engine.ValidStatus(constant.BookingStatusCompleted))
	assert.False(t, engine.ValidStatus("pending"))
	assert.False(t, engine.ValidStatus(""))
}
