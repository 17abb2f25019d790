package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	userRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/logger"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, upd *domain.UserProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, upd)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Issue(userID int64, email string) (string, time.Time, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type recordingActivities struct {
	entries []*domain.Activity
	err     error
}

func (r *recordingActivities) Log(_ context.Context, entry *domain.Activity) error {
	r.entries = append(r.entries, entry)
	return r.err
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	expires := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	newUser := func(t *testing.T) *domain.User {
		return &domain.User{ID: 7, Email: "ana@example.com", Name: "Ana", PasswordHash: hashed(t, "s3cret!")}
	}

	t.Run("Success", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "ana@example.com").Return(newUser(t), nil)
		tokens := new(mockTokens)
		tokens.On("Issue", int64(7), "ana@example.com").Return("jwt-token", expires, nil)
		activities := &recordingActivities{}
		svc := NewService(users, tokens, activities, logger.Nop())

		resp, err := svc.Login(ctx, &models.LoginRequest{
			Email: "  Ana@Example.com ", Password: "s3cret!", IPAddress: "10.0.0.1", UserAgent: "curl/8",
		})
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", resp.Token)
		assert.Equal(t, expires, resp.ExpiresAt)
		assert.Equal(t, int64(7), resp.User.ID)

		require.Len(t, activities.entries, 1)
		assert.Equal(t, domain.ActivityLogin, activities.entries[0].Type)
		assert.Equal(t, "10.0.0.1", *activities.entries[0].IPAddress)
	})

	t.Run("WrongPasswordLogsFailure", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "ana@example.com").Return(newUser(t), nil)
		tokens := new(mockTokens)
		activities := &recordingActivities{err: errors.New("db down")}
		svc := NewService(users, tokens, activities, logger.Nop())

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "ana@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		require.Len(t, activities.entries, 1)
		assert.Equal(t, domain.ActivityLoginFailed, activities.entries[0].Type)
		assert.Nil(t, activities.entries[0].IPAddress)
		tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "x@example.com").Return(nil, userRepo.ErrUserNotFound)
		activities := &recordingActivities{}
		svc := NewService(users, new(mockTokens), activities, logger.Nop())

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "x@example.com", Password: "p"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, activities.entries)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewService(new(mockUserRepo), new(mockTokens), &recordingActivities{}, logger.Nop())

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "ana@example.com"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("TokenError", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByEmail", ctx, "ana@example.com").Return(newUser(t), nil)
		tokens := new(mockTokens)
		tokens.On("Issue", int64(7), "ana@example.com").Return("", time.Time{}, errors.New("boom"))
		svc := NewService(users, tokens, &recordingActivities{}, logger.Nop())

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "ana@example.com", Password: "s3cret!"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()

	users := new(mockUserRepo)
	users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "ana@example.com", PasswordHash: "hash"}, nil)
	users.On("GetByID", ctx, int64(8)).Return(nil, userRepo.ErrUserNotFound)
	svc := NewService(users, new(mockTokens), &recordingActivities{}, logger.Nop())

	resp, err := svc.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.Email)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")

	_, err = svc.GetProfile(ctx, 8)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesAndLogs", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("UpdateProfile", ctx, int64(7), &domain.UserProfileUpdate{
			Name:         ptr.Ptr("Ana María"),
			Phone:        ptr.Ptr("+34600111222"),
			ClearAccount: true,
		}).Return(&domain.User{ID: 7, Name: "Ana María", Phone: ptr.Ptr("+34600111222")}, nil)
		activities := &recordingActivities{}
		svc := NewService(users, new(mockTokens), activities, logger.Nop())

		resp, err := svc.UpdateProfile(ctx, &models.UpdateProfileRequest{
			UserID:  7,
			Name:    ptr.Ptr(" Ana María "),
			Phone:   ptr.Ptr("+34 600-111-222"),
			Account: ptr.Ptr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana María", resp.Name)

		require.Len(t, activities.entries, 1)
		entry := activities.entries[0]
		assert.Equal(t, domain.ActivityProfileUpdated, entry.Type)
		assert.Equal(t, "Perfil actualizado: nombre, teléfono, número de abonado", entry.Description)
		assert.JSONEq(t, `{"fields":["nombre","teléfono","número de abonado"]}`, string(entry.Metadata))
	})

	t.Run("ClearPhone", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("UpdateProfile", ctx, int64(7), &domain.UserProfileUpdate{ClearPhone: true}).
			Return(&domain.User{ID: 7}, nil)
		svc := NewService(users, new(mockTokens), &recordingActivities{}, logger.Nop())

		resp, err := svc.UpdateProfile(ctx, &models.UpdateProfileRequest{UserID: 7, Phone: ptr.Ptr("  ")})
		require.NoError(t, err)
		assert.Nil(t, resp.Phone)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockTokens), &recordingActivities{}, logger.Nop())

		_, err := svc.UpdateProfile(ctx, &models.UpdateProfileRequest{
			UserID: 7,
			Name:   ptr.Ptr("Al"),
			Phone:  ptr.Ptr("12-34"),
		})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "al menos 3 caracteres")
		assert.Contains(t, err.Error(), "Teléfono inválido")
		users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmptyName", func(t *testing.T) {
		svc := NewService(new(mockUserRepo), new(mockTokens), &recordingActivities{}, logger.Nop())

		_, err := svc.UpdateProfile(ctx, &models.UpdateProfileRequest{UserID: 7, Name: ptr.Ptr("   ")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("NothingToUpdate", func(t *testing.T) {
		svc := NewService(new(mockUserRepo), new(mockTokens), &recordingActivities{}, logger.Nop())

		_, err := svc.UpdateProfile(ctx, &models.UpdateProfileRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("UserGone", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("UpdateProfile", ctx, int64(7), mock.Anything).Return(nil, userRepo.ErrUserNotFound)
		svc := NewService(users, new(mockTokens), &recordingActivities{}, logger.Nop())

		_, err := svc.UpdateProfile(ctx, &models.UpdateProfileRequest{UserID: 7, Name: ptr.Ptr("Ana")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	newUser := func(t *testing.T) *domain.User {
		return &domain.User{ID: 7, Email: "ana@example.com", PasswordHash: hashed(t, "Viejo2024")}
	}

	t.Run("Success", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByID", ctx, int64(7)).Return(newUser(t), nil)
		var stored string
		users.On("UpdatePassword", ctx, int64(7), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { stored = args.String(2) }).
			Return(nil)
		activities := &recordingActivities{}
		svc := NewService(users, new(mockTokens), activities, logger.Nop())

		err := svc.ChangePassword(ctx, &models.ChangePasswordRequest{
			UserID: 7, CurrentPassword: "Viejo2024", NewPassword: "Nuevo2025", IPAddress: "203.0.113.9",
		})
		require.NoError(t, err)

		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("Nuevo2025")))
		require.Len(t, activities.entries, 1)
		assert.Equal(t, domain.ActivityPasswordChanged, activities.entries[0].Type)
		assert.Equal(t, "203.0.113.9", *activities.entries[0].IPAddress)
	})

	t.Run("WrongCurrent", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByID", ctx, int64(7)).Return(newUser(t), nil)
		activities := &recordingActivities{}
		svc := NewService(users, new(mockTokens), activities, logger.Nop())

		err := svc.ChangePassword(ctx, &models.ChangePasswordRequest{UserID: 7, CurrentPassword: "Otro2024x", NewPassword: "Nuevo2025"})
		assert.ErrorIs(t, err, ErrWrongPassword)
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, activities.entries)
	})

	t.Run("SameAsCurrent", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByID", ctx, int64(7)).Return(newUser(t), nil)
		svc := NewService(users, new(mockTokens), &recordingActivities{}, logger.Nop())

		err := svc.ChangePassword(ctx, &models.ChangePasswordRequest{UserID: 7, CurrentPassword: "Viejo2024", NewPassword: "Viejo2024"})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "diferente a la actual")
	})

	t.Run("WeakPasswords", func(t *testing.T) {
		svc := NewService(new(mockUserRepo), new(mockTokens), &recordingActivities{}, logger.Nop())

		for _, p := range []string{"", "Ab1", "todominusculas1", "TODOMAYUSCULAS1", "SinNumeros"} {
			err := svc.ChangePassword(ctx, &models.ChangePasswordRequest{UserID: 7, CurrentPassword: "Viejo2024", NewPassword: p})
			assert.ErrorIs(t, err, ErrInvalidInput, p)
		}
	})

	t.Run("UserGone", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByID", ctx, int64(7)).Return(nil, userRepo.ErrUserNotFound)
		svc := NewService(users, new(mockTokens), &recordingActivities{}, logger.Nop())

		err := svc.ChangePassword(ctx, &models.ChangePasswordRequest{UserID: 7, CurrentPassword: "Viejo2024", NewPassword: "Nuevo2025"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
