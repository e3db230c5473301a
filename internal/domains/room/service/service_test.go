package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/config"
	"inn/infras/otel/mocks"
	s3Mocks "inn/infras/s3/mocks"
	roomMocks "inn/internal/domains/room/mocks"
	"inn/internal/domains/room/model"
	"inn/internal/domains/room/model/dto"
	"inn/internal/domains/room/service"
	"inn/shared/cache"
	cacheMocks "inn/shared/cache/mocks"
	gDto "inn/shared/dto"
	"inn/shared/failure"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "inn-assets"

	svc := service.New(repo, cfg, mockCache, mocks.NewOtel(), mockS3)

	return &fixture{
		repo:  repo,
		cache: mockCache,
		s3:    mockS3,
		svc:   svc,
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("without image", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().NextID(gomock.Any()).Return(int64(5), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		req := dto.CreateRoomRequest{
			Number:    "105",
			Type:      "suite",
			Price:     250,
			Capacity:  4,
			Amenities: []string{"wifi"},
		}

		res, err := f.svc.Create(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, int64(5), res.ID)
		assert.Equal(t, "105", res.Number)
		assert.True(t, res.Available)
	})

	t.Run("insert failure surfaces", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().NextID(gomock.Any()).Return(int64(5), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Create(context.Background(), dto.CreateRoomRequest{
			Number:   "105",
			Type:     "suite",
			Price:    250,
			Capacity: 4,
		})

		require.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache miss falls through to repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:7", gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(model.Room{ID: 7, Number: "107"}, true, nil)
		f.cache.EXPECT().Save(gomock.Any(), "room:get:7", gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := f.svc.Get(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), res.ID)
	})

	t.Run("missing room returns 404", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:99", gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetByID(gomock.Any(), int64(99)).Return(model.Room{}, false, nil)

		_, err := f.svc.Get(context.Background(), 99)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.repo.EXPECT().Count(gomock.Any()).Return(12, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params).Return([]model.Room{{ID: 1}, {ID: 2}}, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

	res, err := f.svc.GetAll(context.Background(), params)

	require.NoError(t, err)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestRoomService_Update(t *testing.T) {
	t.Run("missing room returns 404", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetByID(gomock.Any(), int64(99)).Return(model.Room{}, false, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{}, 99)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("overlays set fields", func(t *testing.T) {
		f := newFixture(t)

		current := model.Room{ID: 7, Number: "107", Type: "double", Price: 150, Capacity: 2, Available: true}
		newPrice := 180.0

		f.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(current, true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "room:get:7").Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{Price: &newPrice}, 7)

		require.NoError(t, err)
		assert.Equal(t, 180.0, res.Price)
		assert.Equal(t, "107", res.Number)
	})

	t.Run("replaces stored image", func(t *testing.T) {
		f := newFixture(t)

		current := model.Room{ID: 7, Number: "107", Type: "double", Price: 150, Capacity: 2, Available: true, Image: "https://cdn.example.com/room/old.png"}
		header := &multipart.FileHeader{Filename: "new.png"}

		f.repo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(current, true, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "inn-assets", model.EntityName, gomock.Any(), header, gomock.Any()).Return("https://cdn.example.com/room/new.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("inn-assets", current.Image).Return("old.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "inn-assets", model.EntityName, "old.png").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "room:get:7").Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{Image: header}, 7)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/room/new.png", res.Image)
	})
}
