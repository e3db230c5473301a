package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/user/model"
	"inn/shared/constant"
	gDto "inn/shared/dto"
)

const (
	queryInsert = `
		INSERT INTO users (id, username, password, role, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :username, :password, :role, :created_at, :modified_at, :created_by, :modified_by)`

	querySelect = `
		SELECT id, username, password, role, created_at, modified_at, created_by, modified_by
		FROM users`

	queryCount = `SELECT COUNT(id) FROM users`

	queryNextID = `SELECT COALESCE(MAX(id), 0) + 1 FROM users`
)

type User interface {
	Insert(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, id int64) (model.User, bool, error)
	GetByUsername(ctx context.Context, username string) (model.User, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.User, error)
	Count(ctx context.Context) (int, error)
	NextID(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, user model.User) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = r.db.Write.NamedExecContext(ctx, queryInsert, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (user model.User, found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.Read.GetContext(ctx, &user, querySelect+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get user: %w", err)
	}

	return user, true, nil
}

func (r *repositoryImpl) GetByUsername(ctx context.Context, username string) (user model.User, found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByUsername")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.Read.GetContext(ctx, &user, querySelect+" WHERE username = $1", username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, true, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) (users []model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	users = []model.User{}
	if err = r.db.Read.SelectContext(ctx, &users, querySelect+" ORDER BY id ASC LIMIT $1 OFFSET $2", params.Limit, params.Offset()); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (count int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.db.Read.GetContext(ctx, &count, queryCount); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

func (r *repositoryImpl) NextID(ctx context.Context) (id int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.NextID")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.db.Write.GetContext(ctx, &id, queryNextID); err != nil {
		return 0, fmt.Errorf("failed to allocate user id: %w", err)
	}

	return id, nil
}
