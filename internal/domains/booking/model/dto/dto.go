package dto

import (
	"time"

	"inn/internal/domains/booking/engine"
	"inn/internal/domains/booking/model"
	"inn/shared"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	gModel "inn/shared/model"
	"inn/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID   int64  `json:"room_id"   validate:"required,gt=0"`
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests"    validate:"required,min=1"`
}

// ToAdmission parses the calendar dates into an admission request.
func (c *CreateBookingRequest) ToAdmission() (engine.AdmissionRequest, error) {
	checkIn, err := engine.ParseDate(c.CheckIn)
	if err != nil {
		return engine.AdmissionRequest{}, err
	}

	checkOut, err := engine.ParseDate(c.CheckOut)
	if err != nil {
		return engine.AdmissionRequest{}, err
	}

	return engine.AdmissionRequest{
		RoomID:   c.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   c.Guests,
	}, nil
}

// ToModel builds the booking record admitted from this request.
func (c *CreateBookingRequest) ToModel(id, userID int64, req engine.AdmissionRequest, totalPrice float64, user string) model.Booking {
	return model.Booking{
		ID:         id,
		RoomID:     c.RoomID,
		UserID:     userID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     c.Guests,
		TotalPrice: totalPrice,
		Status:     constant.BookingStatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

type BookingResponse struct {
	ID         int64   `json:"id"`
	RoomID     int64   `json:"room_id"`
	UserID     int64   `json:"user_id"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Guests     int     `json:"guests"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.RoomID = model.RoomID
	b.UserID = model.UserID
	b.CheckIn = model.CheckIn.Format(constant.CalendarDateFormat)
	b.CheckOut = model.CheckOut.Format(constant.CalendarDateFormat)
	b.Guests = model.Guests
	b.TotalPrice = model.TotalPrice
	b.Status = model.Status
	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (b *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	b.TotalData = totalData
	b.TotalPage = shared.CalculateTotalPage(totalData, limit)

	b.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		b.Bookings[i].FromModel(mod)
	}
}

type RefreshAvailabilityResponse struct {
	RoomsChecked int     `json:"rooms_checked"`
	RoomsChanged []int64 `json:"rooms_changed"`
}

// BookingEvent is published to the booking events topic after every
// admission and status change.
type BookingEvent struct {
	Type         string    `json:"type"`
	BookingID    int64     `json:"booking_id"`
	RoomID       int64     `json:"room_id"`
	UserID       int64     `json:"user_id"`
	Status       string    `json:"status"`
	RoomsChanged []int64   `json:"rooms_changed"`
	OccurredAt   time.Time `json:"occurred_at"`
}

const (
	EventTypeBookingCreated       = "booking.created"
	EventTypeBookingStatusChanged = "booking.status_changed"
)
