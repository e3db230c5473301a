package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/config"
	"inn/infras/otel/mocks"
	userMocks "inn/internal/domains/user/mocks"
	"inn/internal/domains/user/model"
	"inn/internal/domains/user/service"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
)

func newService(t *testing.T) (*userMocks.MockUser, service.User) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := userMocks.NewMockUser(ctrl)
	svc := service.New(repo, &config.Config{}, mocks.NewOtel())

	return repo, svc
}

func TestUserService_GetAll(t *testing.T) {
	repo, svc := newService(t)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	repo.EXPECT().Count(gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), params).Return([]model.User{
		{ID: 1, Username: "admin", Role: constant.RoleAdmin},
		{ID: 2, Username: "guest", Role: constant.RoleUser},
	}, nil)

	res, err := svc.GetAll(context.Background(), params)

	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 2, res.TotalData)
}

func TestUserService_GetMe(t *testing.T) {
	t.Run("returns the caller's profile", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(model.User{ID: 3, Username: "guest", Role: constant.RoleUser}, true, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, int64(3))

		res, err := svc.GetMe(ctx)

		require.NoError(t, err)
		assert.Equal(t, "guest", res.Username)
	})

	t.Run("missing user returns 404", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(model.User{}, false, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, int64(9))

		_, err := svc.GetMe(ctx)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
