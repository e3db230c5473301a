package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/booking/model"
	"inn/shared/constant"
	gDto "inn/shared/dto"

	"github.com/jmoiron/sqlx"
)

const (
	queryInsert = `
		INSERT INTO bookings (id, room_id, user_id, check_in, check_out, guests, total_price, status, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :room_id, :user_id, :check_in, :check_out, :guests, :total_price, :status, :created_at, :modified_at, :created_by, :modified_by)`

	querySelect = `
		SELECT id, room_id, user_id, check_in, check_out, guests, total_price, status, created_at, modified_at, created_by, modified_by
		FROM bookings`

	queryCount = `SELECT COUNT(id) FROM bookings`

	queryUpdateStatus = `
		UPDATE bookings
		SET status = $2,
			modified_at = NOW(),
			modified_by = $3
		WHERE id = $1`
)

var sortColumns = map[string]string{
	"id":         "id",
	"room_id":    "room_id",
	"check_in":   "check_in",
	"check_out":  "check_out",
	"status":     "status",
	"created_at": "created_at",
}

type Booking interface {
	ListAll(ctx context.Context) ([]model.Booking, error)
	GetByID(ctx context.Context, id int64) (model.Booking, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Booking, error)
	GetByUser(ctx context.Context, userID int64, params gDto.QueryParams) ([]model.Booking, error)
	Count(ctx context.Context) (int, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id int64, status, modifiedBy string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// ListAll reads the full booking set from the write connection so the
// admission and availability checks never race a stale replica.
func (r *repositoryImpl) ListAll(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings = []model.Booking{}
	if err = r.db.Write.SelectContext(ctx, &bookings, querySelect+" ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (booking model.Booking, found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.Read.GetContext(ctx, &booking, querySelect+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, false, nil
	}
	if err != nil {
		return model.Booking{}, false, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, true, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) (bookings []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("%s ORDER BY %s %s LIMIT $1 OFFSET $2", querySelect, sortColumn(params.SortBy), sortDirection(params.SortDir))

	bookings = []model.Booking{}
	if err = r.db.Read.SelectContext(ctx, &bookings, query, params.Limit, params.Offset()); err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return bookings, nil
}

func (r *repositoryImpl) GetByUser(ctx context.Context, userID int64, params gDto.QueryParams) (bookings []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("%s WHERE user_id = $1 ORDER BY %s %s LIMIT $2 OFFSET $3", querySelect, sortColumn(params.SortBy), sortDirection(params.SortDir))

	bookings = []model.Booking{}
	if err = r.db.Read.SelectContext(ctx, &bookings, query, userID, params.Limit, params.Offset()); err != nil {
		return nil, fmt.Errorf("failed to get bookings by user: %w", err)
	}

	return bookings, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (count int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.db.Read.GetContext(ctx, &count, queryCount); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *repositoryImpl) CountByUser(ctx context.Context, userID int64) (count int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = r.db.Read.GetContext(ctx, &count, queryCount+" WHERE user_id = $1", userID); err != nil {
		return 0, fmt.Errorf("failed to count bookings by user: %w", err)
	}

	return count, nil
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = tx.NamedExecContext(ctx, queryInsert, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *repositoryImpl) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id int64, status, modifiedBy string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatusTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = tx.ExecContext(ctx, queryUpdateStatus, id, status, modifiedBy); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

func sortColumn(requested string) string {
	if column, ok := sortColumns[requested]; ok {
		return column
	}

	return "id"
}

func sortDirection(requested string) string {
	if requested == constant.SortDirAsc {
		return "ASC"
	}

	return "DESC"
}
