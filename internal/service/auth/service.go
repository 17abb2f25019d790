package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	userRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
	"github.com/m04kA/TaxiClass-ReservationService/pkg/ptr"
)

// Service сервис входа и профиля пользователя
type Service struct {
	userRepo   UserRepository
	tokens     TokenIssuer
	activities ActivityLogger
	logger     Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(userRepo UserRepository, tokens TokenIssuer, activities ActivityLogger, logger Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		activities: activities,
		logger:     logger,
	}
}

// Login проверяет пароль и выпускает токен доступа
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user=%d", user.ID)
		s.logActivity(ctx, user.ID, domain.ActivityLoginFailed,
			"Intento de inicio de sesión fallido - contraseña incorrecta", nil, req.IPAddress, req.UserAgent)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logActivity(ctx, user.ID, domain.ActivityLogin, "Inicio de sesión exitoso", nil, req.IPAddress, req.UserAgent)
	s.logger.Info("Login: user=%d logged in", user.ID)

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.FromDomainUser(user),
	}, nil
}

// GetProfile возвращает профиль пользователя
func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetProfile: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUser(user), nil
}

// UpdateProfile меняет имя, телефон и номер абонента
func (s *Service) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	upd, fields, err := profileUpdate(req)
	if err != nil {
		s.logger.Warn("UpdateProfile: rejected update for user=%d: %v", req.UserID, err)
		return nil, err
	}

	user, err := s.userRepo.UpdateProfile(ctx, req.UserID, upd)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	metadata := map[string]interface{}{"fields": fields}
	s.logActivity(ctx, user.ID, domain.ActivityProfileUpdated,
		"Perfil actualizado: "+strings.Join(fields, ", "), metadata, req.IPAddress, req.UserAgent)
	s.logger.Info("UpdateProfile: user=%d updated fields=%v", user.ID, fields)

	return models.FromDomainUser(user), nil
}

// logActivity ошибки журнала не влияют на результат операции
func (s *Service) logActivity(ctx context.Context, userID int64, t domain.ActivityType, description string, metadata map[string]interface{}, ip, ua string) {
	entry := &domain.Activity{
		UserID:      userID,
		Type:        t,
		Description: description,
		IPAddress:   ptr.NonEmpty(ip),
		UserAgent:   ptr.NonEmpty(ua),
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = raw
		}
	}

	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("logActivity: failed to log %s for user=%d: %v", t, userID, err)
	}
}
