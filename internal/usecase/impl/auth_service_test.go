package impl

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	deliverycontext "finance/internal/delivery/context"
	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/domain/service"
	"finance/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignUp_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := usecase.SignUpInput{
		Email:    "ada@example.com",
		Password: "secret1",
		FullName: "Ada Lovelace",
	}

	fx.userRepo.EXPECT().ExistsByEmail(ctx, input.Email).Return(false, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, "hashed_password", user.PasswordHash)
			assert.Equal(t, input.FullName, user.FullName)
			user.ID = 42
		}).
		Return(nil)
	fx.tokenService.EXPECT().Issue(int64(42)).Return("signed.jwt.token", nil)

	output, err := fx.service.SignUp(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, int64(42), output.User.ID)
	assert.Equal(t, input.Email, output.User.Email)
}

func TestAuthService_SignUp_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(true, nil)

	output, err := fx.service.SignUp(ctx, usecase.SignUpInput{Email: "ada@example.com", Password: "secret1", FullName: "Ada"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAuthService_SignUp_LogsOmitEmail(t *testing.T) {
	fx := createTestAuthService(t)

	var buf bytes.Buffer
	ctx := deliverycontext.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	fx.userRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(true, nil)

	_, err := fx.service.SignUp(ctx, usecase.SignUpInput{Email: "ada@example.com", Password: "secret1", FullName: "Ada"})
	require.Error(t, err)

	assert.Contains(t, buf.String(), "Sign-up rejected, email taken")
	assert.NotContains(t, buf.String(), "ada@example.com")
}

func TestAuthService_SignUp_StoreErrors(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      error
	}{
		{
			name:      "unique violation from a concurrent sign-up",
			createErr: domainerrors.ErrEmailTaken.WrapMessage("email already exists"),
			want:      domainerrors.ErrEmailTaken,
		},
		{
			name:      "insert returned no row",
			createErr: domainerrors.ErrUserCreationFailed.WrapMessage("insert returned no row"),
			want:      domainerrors.ErrUserCreationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()

			fx.userRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(false, nil)
			fx.hasher.EXPECT().Hash("secret1").Return("hashed_password", nil)
			fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(tt.createErr)

			output, err := fx.service.SignUp(ctx, usecase.SignUpInput{Email: "ada@example.com", Password: "secret1", FullName: "Ada"})

			assert.Nil(t, output)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestAuthService_SignUp_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("secret1").Return("", errors.New("password length exceeds 72 bytes"))

	_, err := fx.service.SignUp(ctx, usecase.SignUpInput{Email: "ada@example.com", Password: "secret1", FullName: "Ada"})

	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestAuthService_SignUp_LookupFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to check email")

	fx.userRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(false, dbErr)

	_, err := fx.service.SignUp(ctx, usecase.SignUpInput{Email: "ada@example.com", Password: "secret1", FullName: "Ada"})

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "ada@example.com", PasswordHash: "stored_hash", FullName: "Ada"}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("secret1", "stored_hash").Return(true)
	fx.tokenService.EXPECT().Issue(int64(7)).Return("signed.jwt.token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Same(t, user, output.User)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		user := &entity.User{ID: 7, Email: "ada@example.com", PasswordHash: "stored_hash"}

		fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
		fx.hasher.EXPECT().Check("wrong", "stored_hash").Return(false)

		_, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "wrong"})

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("unknown email still compares against the dummy hash", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)
		fx.hasher.EXPECT().DummyHash().Return("dummy_hash")
		fx.hasher.EXPECT().Check("secret1", "dummy_hash").Return(false)

		_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "secret1"})

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})
}

func TestAuthService_Login_LookupFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	fx.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(nil, dbErr)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "ada@example.com", Password: "secret1"})

	assert.True(t, errors.Is(err, dbErr))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_TokenIssueFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "ada@example.com", PasswordHash: "stored_hash"}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check("secret1", "stored_hash").Return(true)
	fx.tokenService.EXPECT().Issue(int64(7)).Return("", errors.New("signing failed"))

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "secret1"})

	assert.True(t, errors.Is(err, domainerrors.ErrTokenIssueFailed))
}

func TestAuthService_CheckStatus(t *testing.T) {
	claims := &service.Claims{UserID: 7}

	t.Run("no verified token", func(t *testing.T) {
		fx := createTestAuthService(t)

		err := fx.service.CheckStatus(context.Background(), service.TokenResult{})

		assert.True(t, errors.Is(err, domainerrors.ErrNotLoggedIn))
	})

	t.Run("expired token", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.tokenService.EXPECT().IsExpired(claims, fixedNow).Return(true)

		err := fx.service.CheckStatus(context.Background(), service.TokenResult{Status: service.TokenValid, Claims: claims})

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	})

	t.Run("live token", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.tokenService.EXPECT().IsExpired(claims, fixedNow).Return(false)

		err := fx.service.CheckStatus(context.Background(), service.TokenResult{Status: service.TokenValid, Claims: claims})

		assert.NoError(t, err)
	})
}

func TestAuthService_CheckStatus_UsesCurrentTime(t *testing.T) {
	fx := createTestAuthService(t)
	later := fixedNow.Add(25 * time.Hour)
	fx.service.(*authService).now = func() time.Time { return later }
	claims := &service.Claims{UserID: 7}

	fx.tokenService.EXPECT().IsExpired(claims, later).Return(true)

	err := fx.service.CheckStatus(context.Background(), service.TokenResult{Status: service.TokenValid, Claims: claims})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}
