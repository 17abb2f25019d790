package auth

import (
	"context"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TaxiClass-ReservationService/internal/domain"
	userRepo "github.com/m04kA/TaxiClass-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/TaxiClass-ReservationService/internal/service/auth/models"
)

const minPasswordLength = 8

// ChangePassword проверяет текущий пароль и сохраняет хэш нового
func (s *Service) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("%w: La contraseña actual y la nueva son requeridas", ErrInvalidInput)
	}
	if err := validatePassword(req.NewPassword); err != nil {
		s.logger.Warn("ChangePassword: weak password for user=%d", req.UserID)
		return err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("ChangePassword: repository error for user=%d: %v", req.UserID, err)
		return fmt.Errorf("%w: ChangePassword - repository error: %v", ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		s.logger.Warn("ChangePassword: wrong current password for user=%d", user.ID)
		return ErrWrongPassword
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.NewPassword)) == nil {
		return fmt.Errorf("%w: La nueva contraseña debe ser diferente a la actual", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ChangePassword: hash error for user=%d: %v", user.ID, err)
		return fmt.Errorf("%w: ChangePassword - hash password: %v", ErrInternal, err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("ChangePassword: repository error for user=%d: %v", user.ID, err)
		return fmt.Errorf("%w: ChangePassword - repository error: %v", ErrInternal, err)
	}

	s.logActivity(ctx, user.ID, domain.ActivityPasswordChanged, "Contraseña cambiada exitosamente", nil, req.IPAddress, req.UserAgent)
	s.logger.Info("ChangePassword: user=%d changed password", user.ID)
	return nil
}

// validatePassword минимум 8 символов, строчная, заглавная буква и цифра
func validatePassword(p string) error {
	if utf8.RuneCountInString(p) < minPasswordLength {
		return fmt.Errorf("%w: La nueva contraseña debe tener al menos %d caracteres", ErrInvalidInput, minPasswordLength)
	}

	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return fmt.Errorf("%w: La contraseña debe contener al menos una mayúscula, una minúscula y un número", ErrInvalidInput)
	}
	return nil
}
