package dto

import (
	"mime/multipart"

	"inn/internal/domains/room/model"
	"inn/shared"
	gDto "inn/shared/dto"
	gModel "inn/shared/model"
	"inn/shared/timezone"

	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	Number    string                `json:"number"    validate:"required,max=20"`
	Type      string                `json:"type"      validate:"required,max=50"`
	Price     float64               `json:"price"     validate:"required,gte=0"`
	Capacity  int                   `json:"capacity"  validate:"required,min=1"`
	Amenities []string              `json:"amenities" validate:"omitempty,dive,max=50"`
	Image     *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Available *bool                 `json:"available" validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(id int64, user string, imageURL string) model.Room {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Room{
		ID:        id,
		Number:    c.Number,
		Type:      c.Type,
		Price:     c.Price,
		Capacity:  c.Capacity,
		Amenities: pq.StringArray(c.Amenities),
		Image:     imageURL,
		Available: available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number    string                `json:"number"    validate:"omitempty,max=20"`
	Type      string                `json:"type"      validate:"omitempty,max=50"`
	Price     *float64              `json:"price"     validate:"omitempty,gte=0"`
	Capacity  *int                  `json:"capacity"  validate:"omitempty,min=1"`
	Amenities []string              `json:"amenities" validate:"omitempty,dive,max=50"`
	Image     *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Available *bool                 `json:"available" validate:"omitempty"`
}

// ApplyTo overlays the set request fields onto the current room, leaving
// the availability flag untouched unless explicitly sent by an admin.
func (u *UpdateRoomRequest) ApplyTo(current model.Room, user string, imageURL string) model.Room {
	updated := current

	if u.Number != "" {
		updated.Number = u.Number
	}
	if u.Type != "" {
		updated.Type = u.Type
	}
	if u.Price != nil {
		updated.Price = *u.Price
	}
	if u.Capacity != nil {
		updated.Capacity = *u.Capacity
	}
	if u.Amenities != nil {
		updated.Amenities = pq.StringArray(u.Amenities)
	}
	if imageURL != "" {
		updated.Image = imageURL
	}
	if u.Available != nil {
		updated.Available = *u.Available
	}

	updated.ModifiedAt = timezone.Now()
	updated.ModifiedBy = user

	return updated
}

type RoomResponse struct {
	ID        int64    `json:"id"`
	Number    string   `json:"number"`
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
	Image     string   `json:"image"`
	Available bool     `json:"available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Amenities = model.Amenities
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
	r.Image = model.Image
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
