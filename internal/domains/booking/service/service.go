package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"inn/config"
	"inn/infras/kafka"
	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/internal/domains/booking/engine"
	"inn/internal/domains/booking/model"
	"inn/internal/domains/booking/model/dto"
	"inn/internal/domains/booking/repository"
	roomModel "inn/internal/domains/room/model"
	roomRepository "inn/internal/domains/room/repository"
	"inn/shared"
	"inn/shared/cache"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
	"inn/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheUserBooking   = "booking:user"
	cacheRoomPrefix    = "room"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id int64, req dto.UpdateBookingStatusRequest) (dto.BookingResponse, error)
	RefreshAvailability(ctx context.Context) (dto.RefreshAvailabilityResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
}

// roomLocks serializes admissions and status changes per room so two
// requests cannot both pass the overlap check before either write lands.
type roomLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: map[int64]*sync.Mutex{}}
}

func (l *roomLocks) lock(roomID int64) func() {
	l.mu.Lock()
	roomLock, ok := l.locks[roomID]
	if !ok {
		roomLock = &sync.Mutex{}
		l.locks[roomID] = roomLock
	}
	l.mu.Unlock()

	roomLock.Lock()

	return roomLock.Unlock
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepository.Room
	db        *postgres.Connection
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
	locks     *roomLocks
	reconcile sync.RWMutex
}

func New(
	repo repository.Booking,
	roomRepo roomRepository.Room,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		db:       db,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafka,
		locks:    newRoomLocks(),
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	unlock := s.locks.lock(req.RoomID)
	defer unlock()

	s.reconcile.RLock()
	defer s.reconcile.RUnlock()

	room, found, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	if !found {
		return res, mapEngineError(engine.ErrRoomNotFound)
	}

	// A missing room outranks a malformed date in the rejection order,
	// so the dates are only parsed once the room is known to exist.
	admission, err := req.ToAdmission()
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		return res, err
	}

	if err = engine.Admit(room, found, bookings, admission); err != nil {
		return res, mapEngineError(err)
	}

	totalPrice := float64(engine.Nights(admission.CheckIn, admission.CheckOut)) * room.Price
	booking := req.ToModel(engine.NextID(bookings), userID, admission, totalPrice, user)

	rooms, err := s.roomRepo.ListAll(ctx)
	if err != nil {
		return res, err
	}

	updated, changed := engine.Recompute(rooms, append(bookings, booking), timezone.Now())

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		return s.persistAvailability(ctx, tx, updated, changed, user)
	})
	if err != nil {
		log.Error().Err(err).Int64("roomID", req.RoomID).Msg("failed to persist booking")

		return res, err
	}

	s.invalidateBookingCaches(ctx, booking)
	s.publishEvent(ctx, dto.BookingEvent{
		Type:         dto.EventTypeBookingCreated,
		BookingID:    booking.ID,
		RoomID:       booking.RoomID,
		UserID:       booking.UserID,
		Status:       booking.Status,
		RoomsChanged: changed,
		OccurredAt:   timezone.Now(),
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id int64, req dto.UpdateBookingStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	booking, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	if !found {
		return res, mapEngineError(engine.ErrBookingNotFound)
	}

	unlock := s.locks.lock(booking.RoomID)
	defer unlock()

	s.reconcile.RLock()
	defer s.reconcile.RUnlock()

	// Re-read under the room lock so a concurrent transition on the
	// same booking cannot slip between check and write.
	booking, found, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	if !found {
		return res, mapEngineError(engine.ErrBookingNotFound)
	}

	if err = engine.Authorize(booking, userID, role); err != nil {
		return res, mapEngineError(err)
	}

	if err = engine.Transition(booking.Status, req.Status); err != nil {
		return res, mapEngineError(err)
	}

	booking.Status = req.Status
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		return res, err
	}

	for i := range bookings {
		if bookings[i].ID == booking.ID {
			bookings[i].Status = booking.Status
		}
	}

	rooms, err := s.roomRepo.ListAll(ctx)
	if err != nil {
		return res, err
	}

	updated, changed := engine.Recompute(rooms, bookings, timezone.Now())

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateStatusTx(ctx, tx, booking.ID, booking.Status, user); err != nil {
			return err
		}

		return s.persistAvailability(ctx, tx, updated, changed, user)
	})
	if err != nil {
		log.Error().Err(err).Int64("bookingID", id).Msg("failed to persist booking status change")

		return res, err
	}

	s.invalidateBookingCaches(ctx, booking)
	s.publishEvent(ctx, dto.BookingEvent{
		Type:         dto.EventTypeBookingStatusChanged,
		BookingID:    booking.ID,
		RoomID:       booking.RoomID,
		UserID:       booking.UserID,
		Status:       booking.Status,
		RoomsChanged: changed,
		OccurredAt:   timezone.Now(),
	})

	res.FromModel(booking)

	return res, nil
}

// RefreshAvailability reconciles every room's availability flag against
// the full booking set. Runs at startup and on demand. Admissions and
// status changes hold the read side of the reconcile lock, so a refresh
// never writes flags derived from a booking set an in-flight admission
// is about to change.
func (s *serviceImpl) RefreshAvailability(ctx context.Context) (res dto.RefreshAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RefreshAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.reconcile.Lock()
	defer s.reconcile.Unlock()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	if user == constant.Empty {
		user = constant.SystemActor
	}

	rooms, err := s.roomRepo.ListAll(ctx)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.ListAll(ctx)
	if err != nil {
		return res, err
	}

	updated, changed := engine.Recompute(rooms, bookings, timezone.Now())

	if len(changed) > 0 {
		err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
			return s.persistAvailability(ctx, tx, updated, changed, user)
		})
		if err != nil {
			return res, err
		}

		go func() {
			c := context.WithoutCancel(ctx)

			shared.InvalidateCaches(c, s.cache, cacheRoomPrefix)
		}()
	}

	log.Info().Int("rooms", len(rooms)).Ints64("changed", changed).Msg("room availability reconciled")

	return dto.RefreshAvailabilityResponse{
		RoomsChecked: len(rooms),
		RoomsChanged: changed,
	}, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, fmt.Sprintf("%d", id))

	var cached dto.BookingResponse
	if err = s.cache.Get(ctx, cacheKey, &cached); err == nil {
		if role != constant.RoleAdmin && cached.UserID != userID {
			return res, failure.Forbidden("not allowed to view this booking") //nolint:wrapcheck
		}

		return cached, nil
	}

	booking, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	if !found {
		return res, mapEngineError(engine.ErrBookingNotFound)
	}

	if err = engine.Authorize(booking, userID, role); err != nil {
		return res, failure.Forbidden("not allowed to view this booking") //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req)
	if err != nil {
		return res, err
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheUserBooking, fmt.Sprintf("%d", userID)), req)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetByUser(ctx, userID, req)
	if err != nil {
		return res, err
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user bookings to cache")
		}
	}()

	return res, nil
}

// persistAvailability writes the recomputed flags for the changed rooms
// inside the caller's transaction.
func (s *serviceImpl) persistAvailability(ctx context.Context, tx *sqlx.Tx, updated []roomModel.Room, changed []int64, user string) error {
	flags := make(map[int64]bool, len(updated))
	for _, room := range updated {
		flags[room.ID] = room.Available
	}

	for _, roomID := range changed {
		if err := s.roomRepo.UpdateAvailabilityTx(ctx, tx, roomID, flags[roomID], user); err != nil {
			return err
		}
	}

	return nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, fmt.Sprintf("%d", booking.ID))); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheUserBooking, fmt.Sprintf("%d", booking.UserID)))
		shared.InvalidateCaches(c, s.cache, cacheRoomPrefix)
	}()
}

func (s *serviceImpl) publishEvent(ctx context.Context, event dto.BookingEvent) {
	if !s.cfg.External.Kafka.Enable || s.kafka == nil {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, constant.KafkaTopicBookingEvents, kafka.Message{
			Key:   fmt.Sprintf("%d", event.BookingID),
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("failed to publish booking event")
		}
	}()
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, engine.ErrRoomNotFound), errors.Is(err, engine.ErrBookingNotFound):
		return failure.NotFound(err.Error()) //nolint:wrapcheck
	case errors.Is(err, engine.ErrInvalidDateRange), errors.Is(err, engine.ErrGuestCountInvalid), errors.Is(err, engine.ErrInvalidStatus):
		return failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	case errors.Is(err, engine.ErrRoomUnavailable), errors.Is(err, engine.ErrDateConflict):
		return failure.Conflict(err.Error()) //nolint:wrapcheck
	case errors.Is(err, engine.ErrAccessDenied):
		return failure.Forbidden(err.Error()) //nolint:wrapcheck
	default:
		return err
	}
}
