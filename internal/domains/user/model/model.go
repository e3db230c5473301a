package model

import "inn/shared/model"

const (
	TableName  = "users"
	EntityName = "user"
)

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
	Role     string `db:"role"`
	model.Metadata
}
