package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/config"
	"inn/infras/jwt"
	"inn/infras/otel/mocks"
	"inn/internal/domains/auth/model/dto"
	"inn/internal/domains/auth/service"
	userMocks "inn/internal/domains/user/mocks"
	userModel "inn/internal/domains/user/model"
	"inn/shared/constant"
	"inn/shared/failure"
	"inn/shared/password"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "inn-test"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name: "successful registration",
			req:  dto.RegisterRequest{Username: "guest", Password: "secret-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByUsername(gomock.Any(), "guest").Return(userModel.User{}, false, nil)
				repo.EXPECT().NextID(gomock.Any()).Return(int64(1), nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "username already taken",
			req:  dto.RegisterRequest{Username: "guest", Password: "secret-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByUsername(gomock.Any(), "guest").Return(userModel.User{ID: 1, Username: "guest"}, true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  dto.RegisterRequest{Username: "guest", Password: "secret-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByUsername(gomock.Any(), "guest").Return(userModel.User{}, false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := userMocks.NewMockUser(ctrl)
			tt.setupMock(mockRepo)

			cfg := testConfig()
			svc := service.New(mockRepo, cfg, mocks.NewOtel(), jwt.New(cfg))

			res, err := svc.Register(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "guest", res.Username)
			assert.Equal(t, constant.RoleUser, res.Role)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("secret-password")
	require.NoError(t, err)

	stored := userModel.User{
		ID:       1,
		Username: "guest",
		Password: hashed,
		Role:     constant.RoleUser,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "guest", Password: "secret-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByUsername(gomock.Any(), "guest").Return(stored, true, nil)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "secret-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByUsername(gomock.Any(), "nobody").Return(userModel.User{}, false, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "guest", Password: "not-the-password"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByUsername(gomock.Any(), "guest").Return(stored, true, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := userMocks.NewMockUser(ctrl)
			tt.setupMock(mockRepo)

			cfg := testConfig()
			svc := service.New(mockRepo, cfg, mocks.NewOtel(), jwt.New(cfg))

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.AccessToken)
			assert.NotEmpty(t, res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)

	cfg := testConfig()
	jwtService := jwt.New(cfg)
	svc := service.New(mockRepo, cfg, mocks.NewOtel(), jwtService)

	t.Run("valid refresh token", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(1, "guest", constant.RoleUser)
		require.NoError(t, err)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "not-a-token"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(1, "guest", constant.RoleUser)
		require.NoError(t, err)

		_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: pair.AccessToken})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
