package room

import (
	"net/http"
	"strconv"

	"inn/infras/otel"
	bookingService "inn/internal/domains/booking/service"
	"inn/internal/domains/room/model/dto"
	"inn/internal/domains/room/service"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
	"inn/shared/validator"
	"inn/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Room
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(service service.Room, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Post("/availability/refresh", handler.RefreshAvailability)
	})
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString("invalid room id")
	}

	return id, nil
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room with the provided details.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param number formData string true "Room number"
// @Param type formData string true "Room type"
// @Param price formData number true "Price per night"
// @Param capacity formData integer true "Maximum guests"
// @Param amenities formData []string false "Amenities"
// @Param available formData boolean false "Availability override"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Data[dto.RoomResponse] "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := roomFormRequest(request)

	file, fileHeader, err := request.FormFile(constant.FormFieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRooms retrieves all rooms with pagination.
// @Summary Get all rooms
// @Description Retrieve all rooms with pagination and sorting.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRoomByID retrieves a single room.
// @Summary Get a room by ID
// @Description Retrieve a single room by its ID.
// @Tags Room
// @Produce json
// @Param id path integer true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room detail"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateRoom handles a partial update of a room.
// @Summary Update a room
// @Description Update the set fields of an existing room.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path integer true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, err := parseID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UpdateRoomRequest{
		Number: request.FormValue("number"),
		Type:   request.FormValue("type"),
	}

	if priceStr := request.FormValue("price"); priceStr != "" {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil {
			req.Price = &price
		}
	}

	if capacityStr := request.FormValue("capacity"); capacityStr != "" {
		if capacity, err := strconv.Atoi(capacityStr); err == nil {
			req.Capacity = &capacity
		}
	}

	if request.MultipartForm != nil {
		if amenities, ok := request.MultipartForm.Value["amenities"]; ok {
			req.Amenities = amenities
		}
	}

	if availableStr := request.FormValue("available"); availableStr != "" {
		if available, err := strconv.ParseBool(availableStr); err == nil {
			req.Available = &available
		}
	}

	file, fileHeader, err := request.FormFile(constant.FormFieldImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// RefreshAvailability reconciles every room's availability flag against
// the current booking set.
// @Summary Refresh room availability
// @Description Recompute and persist the availability flag of every room.
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[dto.RefreshAvailabilityResponse] "Availability reconciled"
// @Failure 500 {object} response.Error
// @Router /v1/rooms/availability/refresh [post]
// @Security BearerAuth
func (handler *Handler) RefreshAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshAvailability")
	defer scope.End()

	res, err := handler.bookings.RefreshAvailability(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh room availability")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room availability reconciled")

	response.WithJSON(writer, http.StatusOK, res)
}

// roomFormRequest reads the plain form fields shared by create and update.
func roomFormRequest(request *http.Request) dto.CreateRoomRequest {
	req := dto.CreateRoomRequest{
		Number: request.FormValue("number"),
		Type:   request.FormValue("type"),
	}

	if priceStr := request.FormValue("price"); priceStr != "" {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil {
			req.Price = price
		}
	}

	if capacityStr := request.FormValue("capacity"); capacityStr != "" {
		if capacity, err := strconv.Atoi(capacityStr); err == nil {
			req.Capacity = capacity
		}
	}

	if request.MultipartForm != nil {
		if amenities, ok := request.MultipartForm.Value["amenities"]; ok {
			req.Amenities = amenities
		}
	}

	if availableStr := request.FormValue("available"); availableStr != "" {
		if available, err := strconv.ParseBool(availableStr); err == nil {
			req.Available = &available
		}
	}

	return req
}
