package engine

import (
	"time"

	"inn/internal/domains/booking/model"
	roomModel "inn/internal/domains/room/model"
	"inn/shared/constant"
)

// AdmissionRequest carries the booking parameters that decide whether a
// new reservation may be admitted.
type AdmissionRequest struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// Admit runs the admission checks for a new booking in a fixed order:
// room existence, date-range sanity, guest count, the room availability
// flag, then date conflicts against existing non-cancelled bookings for
// the same room. The first failing check decides the returned error.
func Admit(room roomModel.Room, roomFound bool, existing []model.Booking, req AdmissionRequest) error {
	if !roomFound {
		return ErrRoomNotFound
	}

	if !req.CheckOut.After(req.CheckIn) {
		return ErrInvalidDateRange
	}

	if req.Guests < 1 || req.Guests > room.Capacity {
		return ErrGuestCountInvalid
	}

	if !room.Available {
		return ErrRoomUnavailable
	}

	for _, booking := range existing {
		if booking.RoomID != req.RoomID {
			continue
		}

		if booking.Status == constant.BookingStatusCancelled {
			continue
		}

		if Overlaps(req.CheckIn, req.CheckOut, booking.CheckIn, booking.CheckOut) {
			return ErrDateConflict
		}
	}

	return nil
}

// NextID allocates the next booking id as one past the highest existing id.
func NextID(existing []model.Booking) int64 {
	var max int64
	for _, booking := range existing {
		if booking.ID > max {
			max = booking.ID
		}
	}

	return max + 1
}

// Occupied reports whether a booking keeps its room unavailable at the
// given instant: it must be confirmed and not yet checked out.
func Occupied(booking model.Booking, now time.Time) bool {
	return booking.Status == constant.BookingStatusConfirmed && booking.CheckOut.After(now)
}

// Recompute derives every room's availability flag from the current
// booking set: a room is available iff no confirmed booking with a
// future check-out references it. It returns the rooms with their
// recomputed flags and the ids of rooms whose flag changed.
func Recompute(rooms []roomModel.Room, bookings []model.Booking, now time.Time) ([]roomModel.Room, []int64) {
	occupied := make(map[int64]bool, len(rooms))
	for _, booking := range bookings {
		if Occupied(booking, now) {
			occupied[booking.RoomID] = true
		}
	}

	updated := make([]roomModel.Room, len(rooms))
	changed := []int64{}

	for i, room := range rooms {
		available := !occupied[room.ID]
		if room.Available != available {
			changed = append(changed, room.ID)
		}

		room.Available = available
		updated[i] = room
	}

	return updated, changed
}

// Authorize checks whether the actor may change the booking: admins may
// change any booking, other users only their own.
func Authorize(booking model.Booking, userID int64, role string) error {
	if role == constant.RoleAdmin {
		return nil
	}

	if booking.UserID != userID {
		return ErrAccessDenied
	}

	return nil
}

var transitions = map[string][]string{
	constant.BookingStatusConfirmed: {constant.BookingStatusCancelled, constant.BookingStatusCompleted},
	constant.BookingStatusCancelled: {},
	constant.BookingStatusCompleted: {},
}

// ValidStatus reports whether the given value is a known booking status.
func ValidStatus(status string) bool {
	_, ok := transitions[status]

	return ok
}

// Transition validates a status change. Setting the current status again
// is a no-op; cancelled and completed are terminal.
func Transition(current, target string) error {
	allowed, ok := transitions[current]
	if !ok || !ValidStatus(target) {
		return ErrInvalidStatus
	}

	if current == target {
		return nil
	}

	for _, status := range allowed {
		if status == target {
			return nil
		}
	}

	return ErrInvalidStatus
}
