package dto

import (
	"inn/internal/domains/user/model"
	"inn/shared"
	gDto "inn/shared/dto"
)

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(model model.User) {
	u.ID = model.ID
	u.Username = model.Username
	u.Role = model.Role
	u.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (u *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	u.TotalData = totalData
	u.TotalPage = shared.CalculateTotalPage(totalData, limit)

	u.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		u.Users[i].FromModel(mod)
	}
}
