package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"inn/shared/failure"
	"inn/shared/validator"
)

type bookingPayload struct {
	RoomID   int64  `validate:"required,gt=0"                       json:"room_id"`
	CheckIn  string `validate:"required,datetime=2006-01-02"        json:"check_in"`
	CheckOut string `validate:"required,datetime=2006-01-02"        json:"check_out"`
	Guests   int    `validate:"required,min=1"                      json:"guests"`
	Status   string `validate:"omitempty,oneof=confirmed cancelled" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        bookingPayload
		expectError bool
	}{
		{
			name: "valid payload",
			data: bookingPayload{
				RoomID:   1,
				CheckIn:  "2026-01-10",
				CheckOut: "2026-01-12",
				Guests:   2,
			},
			expectError: false,
		},
		{
			name: "missing room id",
			data: bookingPayload{
				CheckIn:  "2026-01-10",
				CheckOut: "2026-01-12",
				Guests:   2,
			},
			expectError: true,
		},
		{
			name: "malformed date",
			data: bookingPayload{
				RoomID:   1,
				CheckIn:  "10-01-2026",
				CheckOut: "2026-01-12",
				Guests:   2,
			},
			expectError: true,
		},
		{
			name: "zero guests",
			data: bookingPayload{
				RoomID:   1,
				CheckIn:  "2026-01-10",
				CheckOut: "2026-01-12",
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: bookingPayload{
				RoomID:   1,
				CheckIn:  "2026-01-10",
				CheckOut: "2026-01-12",
				Guests:   2,
				Status:   "pending",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid json body",
			body:        `{"room_id": 1, "check_in": "2026-01-10", "check_out": "2026-01-12", "guests": 2}`,
			expectError: false,
		},
		{
			name:        "malformed json",
			body:        `{"room_id": 1,`,
			expectError: true,
		},
		{
			name:        "valid json failing validation",
			body:        `{"room_id": 0, "check_in": "2026-01-10", "check_out": "2026-01-12", "guests": 2}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bookingPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}

				if failure.GetCode(err) != http.StatusBadRequest {
					t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(err))
				}

				return
			}

			if err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "confirmed",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "cancelled",
			tag:         "oneof=confirmed cancelled completed",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "pending",
			tag:         "oneof=confirmed cancelled completed",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
