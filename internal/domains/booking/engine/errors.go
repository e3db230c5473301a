package engine

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidDateRange  = errors.New("check-out date must be after check-in date")
	ErrGuestCountInvalid = errors.New("guest count exceeds room capacity")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrDateConflict      = errors.New("room is already booked for the selected dates")
	ErrAccessDenied      = errors.New("not allowed to modify this booking")
	ErrInvalidStatus     = errors.New("invalid booking status transition")
)
