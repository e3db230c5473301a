package dto_test

import (
	"testing"

	"inn/internal/domains/room/model"
	"inn/internal/domains/room/model/dto"
	gModel "inn/shared/model"
	"inn/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCreateRoomRequest_ToModel(t *testing.T) {
	req := dto.CreateRoomRequest{
		Number:    "101",
		Type:      "double",
		Price:     150,
		Capacity:  2,
		Amenities: []string{"wifi", "tv"},
	}

	room := req.ToModel(1, "admin", "https://cdn.example.com/room/101.png")

	assert.Equal(t, int64(1), room.ID)
	assert.Equal(t, "101", room.Number)
	assert.Equal(t, "double", room.Type)
	assert.Equal(t, float64(150), room.Price)
	assert.Equal(t, 2, room.Capacity)
	assert.Equal(t, pq.StringArray{"wifi", "tv"}, room.Amenities)
	assert.Equal(t, "https://cdn.example.com/room/101.png", room.Image)
	assert.True(t, room.Available, "new rooms default to available")
	assert.Equal(t, "admin", room.CreatedBy)
	assert.False(t, room.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestCreateRoomRequest_ToModel_AvailabilityOverride(t *testing.T) {
	unavailable := false
	req := dto.CreateRoomRequest{
		Number:    "102",
		Type:      "single",
		Price:     90,
		Capacity:  1,
		Available: &unavailable,
	}

	room := req.ToModel(2, "admin", "")

	assert.False(t, room.Available)
}

func TestUpdateRoomRequest_ApplyTo(t *testing.T) {
	now := timezone.Now()
	current := model.Room{
		ID:        1,
		Number:    "101",
		Type:      "double",
		Price:     150,
		Capacity:  2,
		Amenities: pq.StringArray{"wifi"},
		Image:     "https://cdn.example.com/room/old.png",
		Available: true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "admin",
			ModifiedBy: "admin",
		},
	}

	newPrice := 175.0
	req := dto.UpdateRoomRequest{
		Price:     &newPrice,
		Amenities: []string{"wifi", "minibar"},
	}

	updated := req.ApplyTo(current, "manager", "")

	assert.Equal(t, "101", updated.Number, "unset fields keep their value")
	assert.Equal(t, "double", updated.Type)
	assert.Equal(t, 175.0, updated.Price)
	assert.Equal(t, 2, updated.Capacity)
	assert.Equal(t, pq.StringArray{"wifi", "minibar"}, updated.Amenities)
	assert.Equal(t, current.Image, updated.Image)
	assert.True(t, updated.Available, "availability untouched without an explicit override")
	assert.Equal(t, "manager", updated.ModifiedBy)
	assert.Equal(t, "admin", updated.CreatedBy)
}

func TestUpdateRoomRequest_ApplyTo_NewImage(t *testing.T) {
	current := model.Room{ID: 1, Image: "https://cdn.example.com/room/old.png"}

	req := dto.UpdateRoomRequest{}
	updated := req.ApplyTo(current, "admin", "https://cdn.example.com/room/new.png")

	assert.Equal(t, "https://cdn.example.com/room/new.png", updated.Image)
}

func TestRoomResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	room := model.Room{
		ID:        1,
		Number:    "101",
		Type:      "double",
		Price:     150,
		Capacity:  2,
		Available: true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "admin",
			ModifiedBy: "admin",
		},
	}

	var response dto.RoomResponse
	response.FromModel(room)

	assert.Equal(t, room.ID, response.ID)
	assert.Equal(t, room.Number, response.Number)
	assert.NotNil(t, response.Amenities, "nil amenities serialize as an empty list")
	assert.Empty(t, response.Amenities)
	assert.Equal(t, "admin", response.CreatedBy)
}

func TestGetRoomsResponse_FromModels(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, Number: "101"},
		{ID: 2, Number: "102"},
	}

	var response dto.GetRoomsResponse
	response.FromModels(rooms, 15, 10)

	assert.Len(t, response.Rooms, 2)
	assert.Equal(t, 15, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
}
