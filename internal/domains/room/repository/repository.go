package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/room/model"
	"inn/shared/constant"
	gDto "inn/shared/dto"

	"github.com/jmoiron/sqlx"
)

const (
	queryInsert = `
		INSERT INTO rooms (id, number, type, price, capacity, amenities, image, available, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :number, :type, :price, :capacity, :amenities, :image, :available, :created_at, :modified_at, :created_by, :modified_by)`

	querySelect = `
		SELECT id, number, type, price, capacity, amenities, image, available, created_at, modified_at, created_by, modified_by
		FROM rooms`

	queryCount = `SELECT COUNT(id) FROM rooms`

	queryNextID = `SELECT COALESCE(MAX(id), 0) + 1 FROM rooms`

	queryUpdate = `
		UPDATE rooms
		SET number = :number,
			type = :type,
			price = :price,
			capacity = :capacity,
			amenities = :amenities,
			image = :image,
			available = :available,
			modified_at = :modified_at,
			modified_by = :modified_by
		WHERE id = :id`

	queryUpdateAvailability = `
		UPDATE rooms
		SET available = $2,
			modified_at = NOW(),
			modified_by = $3
		WHERE id = $1`
)

var sortColumns = map[string]string{
	"id":       "id",
	"number":   "number",
	"type":     "type",
	"price":    "price",
	"capacity": "capacity",
}

type Room interface {
	Insert(ctx context.Context, room model.Room) error
	GetByID(ctx context.Context, id int64) (model.Room, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Room, error)
	ListAll(ctx context.Context) ([]model.Room, error)
	Count(ctx context.Context) (int, error)
	NextID(ctx context.Context) (int64, error)
	Update(ctx context.Context, room model.Room) error
	UpdateAvailabilityTx(ctx context.Context, tx *sqlx.Tx, id int64, available bool, modifiedBy string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, room model.Room) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = r.db.Write.NamedExecContext(ctx, queryInsert, room); err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (room model.Room, found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.Read.GetContext(ctx, &room, querySelect+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, false, nil
	}
	if err != nil {
		return model.Room{}, false, fmt.Errorf("failed to get room: %w", err)
	}

	return room, true, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) (rooms []model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	sortBy, ok := sortColumns[params.SortBy]
	if !ok {
		sortBy = "id"
	}

	sortDir := "ASC"
	if params.SortDir == constant.SortDirDesc {
		sortDir = "DESC"
	}

	query := fmt.Sprintf("%s ORDER BY %s %s LIMIT $1 OFFSET $2", querySelect, sortBy, sortDir)

	rooms = []model.Room{}
	if err = r.db.Read.SelectContext(ctx, &rooms, query, params.Limit, params.Offset()); err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	return rooms, nil
}

func (r *repositoryImpl) ListAll(ctx context.Context) (rooms []model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms = []model.Room{}
	if err = r.db.Read.SelectContext(ctx, &rooms, querySelect+" ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (count int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.db.Read.GetContext(ctx, &count, queryCount); err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	return count, nil
}

func (r *repositoryImpl) NextID(ctx context.Context) (id int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.NextID")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.db.Write.GetContext(ctx, &id, queryNextID); err != nil {
		return 0, fmt.Errorf("failed to allocate room id: %w", err)
	}

	return id, nil
}

func (r *repositoryImpl) Update(ctx context.Context, room model.Room) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = r.db.Write.NamedExecContext(ctx, queryUpdate, room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

func (r *repositoryImpl) UpdateAvailabilityTx(ctx context.Context, tx *sqlx.Tx, id int64, available bool, modifiedBy string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.UpdateAvailabilityTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = tx.ExecContext(ctx, queryUpdateAvailability, id, available, modifiedBy); err != nil {
		return fmt.Errorf("failed to update room availability: %w", err)
	}

	return nil
}
